package vault

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

// This file fetches the vault's raw daily rows from the remote JSON
// endpoint and writes the flat CSV snapshot the rest of the pipeline
// consumes. Only this plain JSON path is handled here; the
// browser-automation scraper remains an external collaborator.

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key embeds today's date, so cached responses expire daily:
	// the vault table gains at most one row per day.
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// DailyClient returns an HTTP client whose responses are disk-cached
// until the end of the day.
func DailyClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchSnapshot downloads the vault's PNL table from addr and returns
// its header and raw string rows, one row per trading day, exactly as
// the remote table serves them.
//
// The payload is the table the vault profile page renders:
// $.table.headers is the list of column names and $.table.rows the list
// of row value lists. Values stay raw strings; normalization happens in
// the core once the snapshot is re-read.
func FetchSnapshot(client *http.Client, addr string) (header []string, rows [][]string, err error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, nil, fmt.Errorf("error fetching vault table: %w", err)
	}

	jheaders, err := jsonpath.Get("$.table.headers[*]", jobj)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing vault table headers: %w", err)
	}
	header, err = stringList(jheaders)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing vault table headers: %w", err)
	}

	jrows, err := jsonpath.Get("$.table.rows[*]", jobj)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing vault table rows: %w", err)
	}
	jlist, ok := jrows.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("error parsing vault table rows: not a list: %v", jrows)
	}
	for i, jrow := range jlist {
		row, err := stringList(jrow)
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing vault table row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// stringList coerces a jsonpath result into a list of strings. Numbers
// are kept in their raw decimal notation.
func stringList(jval any) ([]string, error) {
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("not a list: %v", jval)
	}
	list := make([]string, 0, len(jlist))
	for _, v := range jlist {
		switch t := v.(type) {
		case string:
			list = append(list, t)
		case float64:
			// 'f' keeps large volumes out of scientific notation.
			list = append(list, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("not a string or number: %v", v)
		}
	}
	return list, nil
}

// WriteSnapshot writes a fetched table as the flat CSV snapshot file
// the core ingests, creating the parent directory when needed.
func WriteSnapshot(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create snapshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create snapshot %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write snapshot header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write snapshot row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
