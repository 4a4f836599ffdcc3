package main

import (
	"fmt"
	"log"
	"os"

	"github.com/JackWithOneEye/metroview/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	debug := len(os.Getenv("DEBUG")) > 0
	if debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	}
	p := tea.NewProgram(&tui.UIModel{APIHost: os.Getenv("API_HOST"), Debug: debug}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Printf("Error running terminal UI: %v", err)
		os.Exit(1)
	}
}
