package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/JackWithOneEye/metroview/cmd/web"
	"github.com/JackWithOneEye/metroview/internal/metromap"
	tea "github.com/charmbracelet/bubbletea"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

type mapLoadedResult struct {
	Globals web.Globals
	Map     *metromap.Map
	View    web.View
	Err     error
}

type saveViewResult struct {
	Err error
}

func loadMap(host string) tea.Cmd {
	return func() tea.Msg {
		var res mapLoadedResult
		if err := getJSON(host, "/globals", &res.Globals); err != nil {
			return mapLoadedResult{Err: fmt.Errorf("could not get globals: %w", err)}
		}
		body, err := get(host, "/map")
		if err != nil {
			return mapLoadedResult{Err: fmt.Errorf("could not get map: %w", err)}
		}
		res.Map, err = metromap.Decode(bytes.NewReader(body))
		if err != nil {
			return mapLoadedResult{Err: err}
		}
		if err := getJSON(host, "/view", &res.View); err != nil {
			return mapLoadedResult{Err: fmt.Errorf("could not get view: %w", err)}
		}
		return res
	}
}

func saveView(host string, center image.Point) tea.Cmd {
	return func() tea.Msg {
		u := url.URL{Scheme: "http", Host: host, Path: "/view"}
		body, err := json.Marshal(map[string]int{"x": center.X, "y": center.Y})
		if err != nil {
			return saveViewResult{Err: err}
		}
		resp, err := httpClient.Post(u.String(), "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("Error saving view: %v", err)
			return saveViewResult{Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(resp.Body)
			return saveViewResult{Err: fmt.Errorf("could not save view: %s: %s", resp.Status, msg)}
		}
		return saveViewResult{}
	}
}

func get(host, path string) ([]byte, error) {
	u := url.URL{Scheme: "http", Host: host, Path: path}
	resp, err := httpClient.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, d)
	}
	return d, nil
}

func getJSON(host, path string, v any) error {
	d, err := get(host, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(d, v)
}
