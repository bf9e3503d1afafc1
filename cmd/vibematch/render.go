// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend"
)

// printer writes command output as styled tables or indented JSON.
type printer struct {
	w       io.Writer
	jsonOut bool

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Style
}

// newPrinter binds styles to w, so color is dropped when w is not a
// terminal.
func newPrinter(w io.Writer, jsonOut bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		jsonOut: jsonOut,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
		border:  r.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (p *printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) Title(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) Note(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})
	fmt.Fprintln(p.w, t.String())
}

func (p *printer) Recommendations(recs []recommend.Recommendation) {
	if len(recs) == 0 {
		p.Note("no results")
		return
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Track.Name,
			r.Track.Artists,
			r.Track.Genre,
			strconv.FormatFloat(r.Distance, 'f', 4, 64),
			strconv.Itoa(r.Cluster),
		}
	}
	p.Table([]string{"#", "Track", "Artists", "Genre", "Distance", "Cluster"}, rows)
}

func (p *printer) Tracks(tracks []*catalog.Track) {
	if len(tracks) == 0 {
		p.Note("no results")
		return
	}
	rows := make([][]string, len(tracks))
	for i, t := range tracks {
		rows[i] = []string{strconv.Itoa(i + 1), t.Name, t.Artists, t.Genre, t.SpotifyURL()}
	}
	p.Table([]string{"#", "Track", "Artists", "Genre", "Spotify"}, rows)
}

// clusterColumns are the mean features shown in the cluster table, when
// modeled.
var clusterColumns = []string{"energy", "valence", "danceability", "acousticness", "tempo"}

func (p *printer) Clusters(summaries []recommend.ClusterSummary) {
	var cols []string
	if len(summaries) > 0 {
		for _, c := range clusterColumns {
			if _, ok := summaries[0].Means[c]; ok {
				cols = append(cols, c)
			}
		}
	}

	headers := append([]string{"ID", "Label", "Size"}, cols...)
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		row := []string{strconv.Itoa(s.ID), s.Label, strconv.Itoa(s.Size)}
		for _, c := range cols {
			row = append(row, strconv.FormatFloat(s.Means[c], 'f', 3, 64))
		}
		rows[i] = row
	}
	p.Table(headers, rows)
}

func (p *printer) Moods(moods []recommend.Mood) {
	rows := make([][]string, len(moods))
	for i, m := range moods {
		rows[i] = []string{
			m.Label,
			m.Description,
			fmt.Sprintf("e=%.2f v=%.2f d=%.2f%s", m.Target.Energy, m.Target.Valence, m.Target.Danceability, formatExtra(m.Target.Extra)),
		}
	}
	p.Table([]string{"Mood", "Description", "Target"}, rows)
}

func formatExtra(extra map[string]float64) string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out string
	for _, k := range keys {
		out += fmt.Sprintf(" %s=%g", k, extra[k])
	}
	return out
}

func (p *printer) Status(st recommend.Status) {
	rows := [][]string{
		{"source", st.Source},
		{"tracks", strconv.Itoa(st.Tracks)},
		{"raw rows", strconv.Itoa(st.RawRows)},
		{"dropped rows", strconv.Itoa(st.DroppedRows)},
		{"features", fmt.Sprint(st.Features)},
		{"clusters", strconv.Itoa(st.Clusters)},
		{"neighbors", strconv.Itoa(st.Neighbors)},
		{"inertia", strconv.FormatFloat(st.Inertia, 'f', 3, 64)},
		{"build time", st.BuildDuration.String()},
	}
	if len(st.DegenerateFeatures) > 0 {
		rows = append(rows, []string{"constant features", fmt.Sprint(st.DegenerateFeatures)})
	}
	p.Table([]string{"Field", "Value"}, rows)
}
