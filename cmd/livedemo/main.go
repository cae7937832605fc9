// livedemo prints four tunable values twice a second. Run it with go run from
// a checkout, edit the literals in the loop below and save.
//
// Built with -tags livetune_release it prints the literals as compiled.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/phobologic/livetune"
)

var (
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	reg    = livetune.New(livetune.WithLogger(logger))
	src    = reg.Here()

	// Bound in the order the calls appear in main.
	number = livetune.Bind[int](src)
	ratio  = livetune.Bind[float64](src)
	text   = livetune.Bind[string](src)
	text2  = livetune.Bind[string](src)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !reg.Enabled() {
		fmt.Println(labelStyle.Render("release mode: values are fixed"))
	}

	for {
		// feel free to modify the following literals while this runs
		n := number.Live(-1234)
		r := ratio.Live(3.14159)
		s := text.Live("hello world")
		s2 := text2.Live("abcdef")

		fmt.Println(
			labelStyle.Render("number")+" "+valueStyle.Render(fmt.Sprint(n)),
			labelStyle.Render("real")+" "+valueStyle.Render(fmt.Sprint(r)),
			labelStyle.Render("string")+" "+valueStyle.Render(s),
			labelStyle.Render("string2")+" "+valueStyle.Render(s2),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}
	}
}
