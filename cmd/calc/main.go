package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/smartcalc/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname string
		verb   string
		quiet  bool
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.BoolVar(&quiet, "q", false, "print results only, without echoing expressions")
	flag.Parse()

	exprs := flag.Args()
	if len(exprs) == 0 {
		lines, err := inlines(inname)
		if err != nil {
			log.Fatal(err)
		}
		exprs = lines
	}

	verb += "\n"
	status := 0
	for _, src := range exprs {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if !quiet {
			fmt.Printf("%s = ", src)
		}
		r, err := calc.Evaluate(src)
		if err != nil {
			fmt.Println(err)
			status = 1
			continue
		}
		fmt.Printf(verb, r)
	}
	os.Exit(status)
}

func inlines(inname string) ([]string, error) {
	f := os.Stdin
	if inname != "" && inname != "-" {
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	}
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
