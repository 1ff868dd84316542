package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/zephyrtronium/ods/list"
	"github.com/zephyrtronium/ods/tpool"
)

// transcript is the record of a scripted sequence of operations on one
// container.
type transcript struct {
	Kind  string       `json:"kind"`
	Steps []demoResult `json:"steps"`
}

type demoResult struct {
	Op       string `json:"op"`
	Result   *int   `json:"result,omitzero"`
	Len      int    `json:"len"`
	Elements []int  `json:"elements"`
}

func (tr *transcript) record(desc string, result *int, c interface{ Len() int }) {
	tr.Steps = append(tr.Steps, demoResult{
		Op:       desc,
		Result:   result,
		Len:      c.Len(),
		Elements: elements(c),
	})
}

// script runs the demonstration sequence on a new container of kind k:
// add 1, 2, 3 at the end; remove the first; get the second; set the second
// to 4.
func script(k kind) (*transcript, error) {
	tr := transcript{Kind: k.name}
	if k.list != nil {
		l := k.list()
		for i, x := range []int{1, 2, 3} {
			if err := l.Add(i, x); err != nil {
				return nil, fmt.Errorf("couldn't add %d: %w", x, err)
			}
			tr.record(fmt.Sprintf("add(%d, %d)", i, x), nil, l)
		}
		x, err := l.Remove(0)
		if err != nil {
			return nil, fmt.Errorf("couldn't remove: %w", err)
		}
		tr.record("remove(0)", &x, l)
		y, err := l.Get(1)
		if err != nil {
			return nil, fmt.Errorf("couldn't get: %w", err)
		}
		tr.record("get(1)", &y, l)
		z, err := l.Set(1, 4)
		if err != nil {
			return nil, fmt.Errorf("couldn't set: %w", err)
		}
		tr.record("set(1, 4)", &z, l)
		return &tr, nil
	}
	// Fix the random source so random queues give the same demo every time.
	q := k.queue(rand.New(rand.NewPCG(1, 2)))
	for _, x := range []int{1, 2, 3} {
		q.Add(x)
		tr.record(fmt.Sprintf("add(%d)", x), nil, q)
	}
	x, err := q.Remove()
	if err != nil {
		return nil, fmt.Errorf("couldn't remove: %w", err)
	}
	tr.record("remove()", &x, q)
	ix, ok := q.(indexed)
	if !ok {
		return &tr, nil
	}
	y, err := ix.Get(1)
	if err != nil {
		return nil, fmt.Errorf("couldn't get: %w", err)
	}
	tr.record("get(1)", &y, q)
	z, err := ix.Set(1, 4)
	if err != nil {
		return nil, fmt.Errorf("couldn't set: %w", err)
	}
	tr.record("set(1, 4)", &z, q)
	return &tr, nil
}

var bufs = tpool.Pool[*bytes.Buffer]{
	New:   func() *bytes.Buffer { return new(bytes.Buffer) },
	Reset: (*bytes.Buffer).Reset,
}

// demo writes transcripts of the demonstration script for each named kind
// to w, formatted either as text or as one JSON object per kind.
func demo(w io.Writer, format string, names []string) error {
	b := bufs.Get()
	defer bufs.Put(b)
	var enc *jsontext.Encoder
	if format == "json" {
		enc = jsontext.NewEncoder(b)
	}
	for _, name := range names {
		k, ok := kindNamed(name)
		if !ok {
			return fmt.Errorf("unknown container kind %q", name)
		}
		tr, err := script(k)
		if err != nil {
			return fmt.Errorf("couldn't run %s demo: %w", name, err)
		}
		switch format {
		case "json":
			if err := json.MarshalEncode(enc, tr); err != nil {
				return fmt.Errorf("couldn't encode %s demo: %w", name, err)
			}
		default:
			tr.text(b)
		}
	}
	_, err := w.Write(b.Bytes())
	return err
}

func (tr *transcript) text(b *bytes.Buffer) {
	b.WriteString(tr.Kind)
	b.WriteByte('\n')
	for _, s := range tr.Steps {
		desc := s.Op
		if s.Result != nil {
			desc += " = " + strconv.Itoa(*s.Result)
		}
		fmt.Fprintf(b, "\t%-14s len %d  %s\n", desc, s.Len, list.FormatSlice(s.Elements))
	}
}
