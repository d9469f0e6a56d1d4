package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mmcdole/moviedb/internal/domain"
)

// jsonCodec stores the catalog as {"title": {"year": ..., "rating": ...}}.
// Keys are streamed token by token so file order survives a load.
type jsonCodec struct{}

func (jsonCodec) name() string { return "json" }

func (jsonCodec) decode(r io.Reader) (*domain.Catalog, error) {
	dec := json.NewDecoder(r)
	catalog := domain.NewCatalog()

	tok, err := dec.Token()
	if err == io.EOF {
		return catalog, nil
	}
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected title key, got %v", tok)
		}

		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("movie %q: %w", title, err)
		}
		if title == "" {
			continue
		}
		catalog.Put(rec.movie(title))
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after catalog object: %v %v", tok, err)
	}
	return catalog, nil
}

func (jsonCodec) encode(w io.Writer, c *domain.Catalog) error {
	if c.IsEmpty() {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, m := range c.Movies() {
		key, err := json.Marshal(m.Title)
		if err != nil {
			return err
		}
		value, err := json.MarshalIndent(newRecord(m), "    ", "    ")
		if err != nil {
			return err
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < c.Len()-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
