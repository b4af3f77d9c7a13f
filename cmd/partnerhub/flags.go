package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// idsFlag collects a repeatable numeric id flag.
type idsFlag []uint

func (m *idsFlag) String() string {
	parts := make([]string, len(*m))
	for i, id := range *m {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func (m *idsFlag) Set(v string) error {
	id, err := parseID(v)
	if err != nil {
		return err
	}
	*m = append(*m, id)
	return nil
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", v)
	}
	return uint(id), nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("partnerhub "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

var stdin = bufio.NewReader(os.Stdin)

// prompt reads one line from stdin when value is empty.
func prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
