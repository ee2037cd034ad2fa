package timetable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	appLog "tussenuur/internal/log"
)

const (
	// reportTemplate is the report name the university timetable service
	// expects; the literal plus signs are part of the template identifier.
	reportTemplate = "su+location+individual_eng"

	// scheduleTableSelector identifies the timetable grid inside the
	// reporting page.
	scheduleTableSelector = ".grid-border-args"
)

// Client fetches and parses per-room schedules from the university
// reporting service. A Client is safe for concurrent use; every fetch is
// independent.
type Client struct {
	httpClient *http.Client

	baseURL string
	// engineeringURL serves rooms of the engineering complex, which live on
	// a separate reporting instance.
	engineeringURL string

	quirks SourceQuirks
}

// ClientConfig carries the endpoints and timeout for a Client.
type ClientConfig struct {
	BaseURL        string
	EngineeringURL string
	FetchTimeout   time.Duration
}

// NewClient builds a schedule Client with the default source quirks.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	engineering := cfg.EngineeringURL
	if engineering == "" {
		engineering = cfg.BaseURL
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        cfg.BaseURL,
		engineeringURL: engineering,
		quirks:         DefaultQuirks(),
	}
}

// scheduleURL builds the reporting URL for one room and week. Engineering
// rooms are routed to the alternate reporting instance.
func (c *Client) scheduleURL(room string, week int) string {
	base := c.baseURL
	if strings.Contains(strings.ToLower(room), "engrg") {
		base = c.engineeringURL
	}

	q := url.Values{}
	q.Set("idtype", "name")
	q.Set("objectclass", "location")
	q.Set("template", reportTemplate)
	q.Set("identifier", room)
	q.Set("weeks", strconv.Itoa(week))
	return base + "?" + q.Encode()
}

// FetchDaySlots fetches one room's weekly timetable page and extracts the
// booked time tokens for the given day. Failures return an error alongside
// nil slots; callers decide whether to degrade or abort.
func (c *Client) FetchDaySlots(ctx context.Context, room string, week int, day string) ([]string, error) {
	reqURL := c.scheduleURL(room, week)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schedule for %s: %s", room, resp.Status)
	}

	rows, err := parseScheduleTable(resp.Body)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		// No grid on the page: the room may not exist or the page layout
		// changed. Treated as a schedule with no bookings.
		appLog.Info("no schedule table found", "room", room, "week", week)
		return nil, nil
	}

	grid := Reconstruct(rows)
	return ExtractDaySlots(grid, day, c.quirks), nil
}

// parseScheduleTable extracts the raw cell rows of the first schedule grid
// in an HTML document. It returns (nil, nil) when the document has no grid.
func parseScheduleTable(r io.Reader) ([][]RawCell, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	tbl := doc.Find(scheduleTableSelector).First()
	if tbl.Length() == 0 {
		return nil, nil
	}

	var rows [][]RawCell
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []RawCell
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, RawCell{
				Text:    strings.TrimSpace(cell.Text()),
				Class:   cell.AttrOr("class", ""),
				RowSpan: spanAttr(cell, "rowspan"),
				ColSpan: spanAttr(cell, "colspan"),
			})
		})
		rows = append(rows, row)
	})
	if len(rows) == 0 {
		return nil, errors.New("schedule table has no rows")
	}
	return rows, nil
}

// spanAttr reads a rowspan/colspan attribute, defaulting to 1 when absent
// or malformed.
func spanAttr(cell *goquery.Selection, name string) int {
	v, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
