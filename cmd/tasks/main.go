package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmehra2102/TaskList/internal/client"
	"github.com/dmehra2102/TaskList/internal/tui"
)

func main() {
	apiURL := flag.String("api", "http://localhost:3000", "task list API base URL")
	status := flag.String("status", "", "status filter (todo|doing|done)")
	limit := flag.Int("limit", 10, "page size (1-50)")
	debounce := flag.Duration("debounce", client.DefaultDebounce, "quiet period before a search is sent")
	flag.Parse()

	api := client.NewAPIClient(*apiURL, &http.Client{Timeout: 15 * time.Second})
	session := client.NewSession(api, client.SessionConfig{
		Params:   client.Params{Limit: *limit, Status: *status},
		Debounce: *debounce,
	})

	p := tea.NewProgram(tui.NewModel(session))
	session.OnChange(func(s client.Snapshot) {
		p.Send(tui.SnapshotMsg(s))
	})

	_, err := p.Run()
	session.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
