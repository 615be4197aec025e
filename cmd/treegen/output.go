package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// withOutput runs fn against the requested output file, or stdout when path
// is empty.
func withOutput(path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeTrees emits one serialized tree per line, in the order given.
func writeTrees(w io.Writer, trees []*tree.Node) error {
	bw := bufio.NewWriter(w)
	for _, t := range trees {
		if _, err := bw.WriteString(tree.Serialize(t)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func printJSON(response interface{}) {
	printJSONToWriter(os.Stdout, response)
}

func printJSONToWriter(w io.Writer, response interface{}) {
	prettyJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		log.Fatalf("cannot format JSON: %v", err)
	}
	fmt.Fprintf(w, "%s\n", prettyJSON)
}
