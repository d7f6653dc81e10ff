package silt_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/silt"
	"github.com/aretw0/silt/pkg/core"
)

// Example_basic loads an in-memory object graph and follows a link both ways.
func Example_basic() {
	raw := map[string]any{
		"author": map[string]any{
			"data": []any{
				map[string]any{"_k": "ada", "name": "Ada"},
			},
		},
		"post": map[string]any{
			"data": []any{
				// Go maps are read in sorted key order; "_author" sorts before "_k".
				map[string]any{"_author": "ADA", "_k": 1, "title": "Notes"},
			},
		},
	}

	c, err := silt.Load(raw)
	if err != nil {
		log.Fatal(err)
	}

	posts, _ := c.TypeStore("post")
	post, _ := posts.Get(1)
	author, _ := c.Follow(post, "author")
	name, _ := author.Get("name")
	fmt.Println("author:", name)

	back, _ := c.Related(author, "post")
	title, _ := back[0].Get("title")
	fmt.Println("wrote:", title)
	// Output:
	// author: Ada
	// wrote: Notes
}

// Example_files loads JSON and YAML files, resolving links across them.
func Example_files() {
	dir, err := os.MkdirTemp("", "silt-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	_ = os.WriteFile(filepath.Join(dir, "days.yaml"), []byte("day:\n  data:\n    - _k: d1\n    - _k: d2\n"), 0644)
	_ = os.WriteFile(filepath.Join(dir, "trips.json"), []byte(`{"trip": {"data": [{"_day_s": ["d1", "d2"], "_k": 1}]}}`), 0644)

	c, err := silt.LoadFiles([]string{filepath.Join(dir, "*")})
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range c.Types() {
		store, _ := c.TypeStore(name)
		fmt.Printf("%s: %d\n", name, store.Count())
	}
	// Output:
	// day: 2
	// trip: 1
}

// ExampleOpenView decodes records into a struct.
func ExampleOpenView() {
	type Post struct {
		Title  string   `json:"title"`
		Author core.Ref `json:"author"`
	}

	raw := map[string]any{
		"author": map[string]any{"data": []any{map[string]any{"_k": "ada"}}},
		"post":   map[string]any{"data": []any{map[string]any{"_author": "ada", "_k": 1, "title": "Notes"}}},
	}
	c, err := silt.Load(raw)
	if err != nil {
		log.Fatal(err)
	}

	view, err := silt.OpenView[Post](c, "post")
	if err != nil {
		log.Fatal(err)
	}
	post, _ := view.Get(1)
	fmt.Println(post.Data.Title, post.Data.Author)
	// Output:
	// Notes author:ada
}
