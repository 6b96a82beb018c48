// Command console is an interactive shell over the recommendation service
// for local exploration, no HTTP server required.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	app "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/pkg/logger"
)

// command is the closed set of console commands.
type command string

const (
	cmdRecommend command = "recommend"
	cmdSearch    command = "search"
	cmdEvents    command = "events"
	cmdEvent     command = "event"
	cmdTracks    command = "tracks"
	cmdVenues    command = "venues"
	cmdHistory   command = "history"
	cmdExport    command = "export"
	cmdReload    command = "reload"
	cmdHelp      command = "help"
	cmdQuit      command = "quit"
)

// handler executes one console command against the service.
type handler func(ctx context.Context, svc *app.Service, arg string) error

// dispatch maps each command onto its handler. Adding a command means
// adding a constant above and an entry here; there is no fallthrough.
var dispatch = map[command]handler{
	cmdRecommend: runRecommend,
	cmdSearch:    runSearch,
	cmdEvents:    runEvents,
	cmdEvent:     runEvent,
	cmdTracks:    runTracks,
	cmdVenues:    runVenues,
	cmdHistory:   runHistory,
	cmdExport:    runExport,
	cmdReload:    runReload,
}

func main() {
	eventsFile := flag.String("events", "", "CSV event corpus (default: bundled sample events)")
	topK := flag.Int("top", 5, "Recommendations per query")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	// Keep the console output clean; structured logs only matter on errors.
	_ = logger.SetLevelString("error")

	ctx := context.Background()

	svc := app.New(
		app.WithEventsFile(*eventsFile),
		app.WithDefaultTopK(*topK),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	stats := svc.GetStats()
	fmt.Printf("summitrec console: %v events, %v vocabulary terms\n", stats["corpusSize"], stats["vocabularySize"])
	fmt.Println(`Type "help" for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, arg, _ := strings.Cut(line, " ")
		cmd := command(strings.ToLower(name))
		arg = strings.TrimSpace(arg)

		switch cmd {
		case cmdQuit:
			return
		case cmdHelp:
			printHelp()
		default:
			run, ok := dispatch[cmd]
			if !ok {
				fmt.Printf("unknown command %q; type \"help\"\n", name)
				continue
			}
			if err := run(ctx, svc, arg); err != nil {
				fmt.Println("error:", err)
			}
		}
	}
}

func printHelp() {
	fmt.Print(`Commands:
  recommend <profile text or LinkedIn URL>   rank events against a profile
  search <query>                             free-text agenda search
  events                                     list the loaded corpus
  event <id>                                 show one event
  tracks                                     list tracks with event counts
  venues                                     list venues
  history [action]                           show the navigation log
  export [file]                              write the corpus as JSON
  reload                                     re-read the corpus and re-fit
  help                                       show this help
  quit                                       exit
`)
}

func runRecommend(ctx context.Context, svc *app.Service, arg string) error {
	if arg == "" {
		return errors.New("usage: recommend <profile text or LinkedIn URL>")
	}

	recs, p, err := svc.Recommend(ctx, arg, 0)
	if err != nil {
		return err
	}

	if p.IsLinkedIn {
		fmt.Printf("LinkedIn profile %q, inferred skills: %s\n", p.Username, strings.Join(p.Skills, ", "))
	} else if len(p.Skills) > 0 {
		fmt.Printf("Detected skills: %s\n", strings.Join(p.Skills, ", "))
	}

	for i, r := range recs {
		fmt.Printf("%2d. [%3d%%] %s (%s)\n      %s\n", i+1, r.MatchPercentage, r.Event.Title, r.Event.ID, r.Explanation)
	}
	return nil
}

func runSearch(ctx context.Context, svc *app.Service, arg string) error {
	if arg == "" {
		return errors.New("usage: search <query>")
	}

	recs, err := svc.Search(ctx, arg, 0)
	if err != nil {
		return err
	}
	for i, r := range recs {
		fmt.Printf("%2d. [%.3f] %s (%s)\n", i+1, r.Score, r.Event.Title, r.Event.ID)
	}
	return nil
}

func runEvents(ctx context.Context, svc *app.Service, _ string) error {
	events, err := svc.Events(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%-12s %-45s %s\n", e.ID, e.Title, e.Track)
	}
	return nil
}

func runEvent(ctx context.Context, svc *app.Service, arg string) error {
	if arg == "" {
		return errors.New("usage: event <id>")
	}

	e, err := svc.EventByID(ctx, arg)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("no event with id %q", arg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", e.ID, e.Title)
	fmt.Printf("  %s\n", e.Description)
	fmt.Printf("  Track:    %s\n", e.Track)
	fmt.Printf("  Topics:   %s\n", strings.Join(e.Topics, ", "))
	fmt.Printf("  Speakers: %s\n", strings.Join(e.Speakers, ", "))
	fmt.Printf("  Venue:    %s, %s\n", e.Venue, e.Location)
	if !e.StartTime.IsZero() {
		fmt.Printf("  When:     %s to %s\n", e.StartTime.Format("Mon 15:04"), e.EndTime.Format("15:04"))
	}
	fmt.Printf("  Capacity: %s\n", strconv.Itoa(e.Capacity))
	return nil
}

func runTracks(ctx context.Context, svc *app.Service, _ string) error {
	tracks, err := svc.Tracks(ctx)
	if err != nil {
		return err
	}
	for _, t := range tracks {
		fmt.Printf("%3d  %s\n", t.Count, t.Name)
	}
	return nil
}

func runVenues(ctx context.Context, svc *app.Service, _ string) error {
	venues, err := svc.Venues(ctx)
	if err != nil {
		return err
	}
	for _, v := range venues {
		ids := append([]string(nil), v.Events...)
		sort.Strings(ids)
		fmt.Printf("%-25s (%.4f, %.4f)  %s\n", v.Name, v.Lat, v.Lon, strings.Join(ids, " "))
	}
	return nil
}

func runHistory(ctx context.Context, svc *app.Service, arg string) error {
	records, err := svc.History(ctx, arg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no interactions recorded")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %-10s %v\n", r.Timestamp.Format("15:04:05"), r.Action, r.Detail)
	}
	return nil
}

func runExport(ctx context.Context, svc *app.Service, arg string) error {
	events, err := svc.Events(ctx)
	if err != nil {
		return err
	}
	if arg == "" {
		return repository.ExportJSON(os.Stdout, events)
	}
	if err := repository.SaveJSON(arg, events); err != nil {
		return err
	}
	fmt.Printf("exported %d events to %s\n", len(events), arg)
	return nil
}

func runReload(ctx context.Context, svc *app.Service, _ string) error {
	if err := svc.Reload(ctx); err != nil {
		return err
	}
	stats := svc.GetStats()
	fmt.Printf("reloaded: %v events, %v vocabulary terms\n", stats["corpusSize"], stats["vocabularySize"])
	return nil
}
