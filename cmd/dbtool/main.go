// dbtool inspects and maintains the directory database from the command
// line. It runs independently of the API process.
//
//	dbtool --users                list all users
//	dbtool --stats                row counts and age aggregates
//	dbtool --occupations          breakdown by occupation
//	dbtool --search <term>        search users by name or email
//	dbtool --auth                 list auth usernames
//	dbtool --sessions             list active sessions
//	dbtool --cleanup              delete expired sessions
//	dbtool --export-csv <path>    export users as CSV
//	dbtool --dump-sql <path>      dump all tables as INSERT statements
//	dbtool --sql <query>          run a raw query
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/amanbabu2004/web-application-students/internal/config"
	"github.com/amanbabu2004/web-application-students/internal/report"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var (
		dsn         = flag.String("dsn", "", "Postgres DSN (default: PG_DSN env)")
		showUsers   = flag.Bool("users", false, "show all users")
		showStats   = flag.Bool("stats", false, "show user statistics")
		occupations = flag.Bool("occupations", false, "show occupation breakdown")
		search      = flag.String("search", "", "search users by name or email")
		showAuth    = flag.Bool("auth", false, "show auth users")
		sessions    = flag.Bool("sessions", false, "show active sessions")
		cleanup     = flag.Bool("cleanup", false, "clean up expired sessions")
		exportCSV   = flag.String("export-csv", "", "export users to CSV file")
		dumpSQL     = flag.String("dump-sql", "", "dump tables as SQL to file")
		rawSQL      = flag.String("sql", "", "execute raw SQL query")
	)
	flag.Parse()

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("config: %v (or pass -dsn)", err)
		}
		*dsn = cfg.PG.DSN
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	tool := report.New(db)
	out := os.Stdout

	switch {
	case *showUsers:
		users, err := tool.Users(ctx)
		fatalOn(err)
		report.RenderUsers(out, users)

	case *showStats:
		stats, err := tool.Stats(ctx)
		fatalOn(err)
		report.RenderStats(out, stats)

	case *occupations:
		list, err := tool.Occupations(ctx)
		fatalOn(err)
		report.RenderOccupations(out, list)

	case *search != "":
		users, err := tool.Search(ctx, *search)
		fatalOn(err)
		fmt.Fprintf(out, "Search results for %q:\n", *search)
		report.RenderUsers(out, users)

	case *showAuth:
		list, err := tool.Credentials(ctx)
		fatalOn(err)
		report.RenderCredentials(out, list)

	case *sessions:
		list, err := tool.ActiveSessions(ctx)
		fatalOn(err)
		report.RenderSessions(out, list)

	case *cleanup:
		n, err := tool.CleanupExpiredSessions(ctx)
		fatalOn(err)
		fmt.Fprintf(out, "Removed %d expired session(s)\n", n)

	case *exportCSV != "":
		users, err := tool.Users(ctx)
		fatalOn(err)
		f, err := os.Create(*exportCSV)
		fatalOn(err)
		defer f.Close()
		fatalOn(report.WriteUsersCSV(f, users))
		fmt.Fprintf(out, "Exported %d user(s) to %s\n", len(users), *exportCSV)

	case *dumpSQL != "":
		f, err := os.Create(*dumpSQL)
		fatalOn(err)
		defer f.Close()
		fatalOn(tool.DumpSQL(ctx, f))
		fmt.Fprintf(out, "Dumped database to %s\n", *dumpSQL)

	case *rawSQL != "":
		result, err := tool.Query(ctx, *rawSQL)
		fatalOn(err)
		report.RenderResult(out, result)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatalOn(err error) {
	if err != nil {
		log.Fatalf("dbtool: %v", err)
	}
}
