package main

import (
	"fmt"
	"os"

	"github.com/dgnorton/htmlcore/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: htmlcore <file.html>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	p := parser.NewParser(f)
	doc, err := p.Start()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(doc.String())
	for _, d := range p.TreeConstructor.Diagnostics() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Mode, d.Kind)
	}
}
