// Command publishassets uploads a directory of static assets (logos, hero
// images) to the configured storage driver and prints the public URLs.
package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
	"github.com/LeroySteding/medusajs-yn-railway/internal/storage"
)

func main() {
	dir := flag.String("dir", "static/assets", "directory to publish")
	dryRun := flag.Bool("dry-run", false, "list files without uploading")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	count := 0
	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(*dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if *dryRun {
			log.Printf("would publish %s -> %s", path, st.URL(key))
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return err
		}

		res, err := st.Put(ctx, f, storage.PutInput{
			Key:         key,
			Filename:    d.Name(),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Size:        info.Size(),
		})
		if err != nil {
			return err
		}
		count++
		log.Printf("published %s", res.URL)
		return nil
	})
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Printf("done, %d file(s) published via %s", count, cfg.Storage.Driver)
}
