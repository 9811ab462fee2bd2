// fieldgen writes scene files for voidrift.
//
// Usage:
//
//	go run ./cmd/fieldgen <command> [-in path] [-out path] [-seed n] [-count n]
//
// Commands:
//
//	new     write the built-in scene with a reseeded asteroid field
//	expand  replace a scene's field section with the asteroids it generates
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voidrift/simcore/internal/data"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	in := fs.String("in", "", "input scene (empty = built-in)")
	out := fs.String("out", "scene.yaml", "output path")
	seed := fs.Uint64("seed", 1, "field seed")
	count := fs.Int("count", -1, "field size (-1 keeps the scene's)")
	_ = fs.Parse(os.Args[2:])

	var (
		sc  *data.Scene
		err error
	)
	switch cmd {
	case "new":
		sc, err = reseed(*in, *seed, *count)
	case "expand":
		sc, err = expand(*in)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err == nil {
		err = writeYAML(*out, sc, "# generated by fieldgen "+cmd)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d asteroids)\n", *out, len(sc.AllAsteroids()))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: fieldgen <new|expand> [-in path] [-out path] [-seed n] [-count n]")
}

func reseed(in string, seed uint64, count int) (*data.Scene, error) {
	sc, err := data.LoadScene(in)
	if err != nil {
		return nil, err
	}
	if sc.Field == nil {
		return nil, fmt.Errorf("scene has no field section")
	}
	sc.Field.Seed = seed
	if count >= 0 {
		sc.Field.Count = count
	}
	return sc, nil
}

// expand pins the generated asteroids so the file no longer depends on the
// generator.
func expand(in string) (*data.Scene, error) {
	sc, err := data.LoadScene(in)
	if err != nil {
		return nil, err
	}
	sc.Asteroids = sc.AllAsteroids()
	sc.Field = nil
	return sc, nil
}

func writeYAML(path string, v any, comment string) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if comment != "" {
		fmt.Fprintln(f, comment)
		fmt.Fprintln(f)
	}
	_, err = f.Write(out)
	return err
}
