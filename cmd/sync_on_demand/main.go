package main

import (
	"context"
	"fmt"
	"log"

	"pathsync/core/backend"
	"pathsync/core/backend/memory"
	"pathsync/core/path"
	"pathsync/core/reconcile"

	"go.uber.org/zap"
)

// Two in-memory stores edited independently, then reconciled on demand.
func main() {
	ctx := context.Background()

	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	local := memory.New[string]()
	remote := memory.New[string]()

	folder := path.NewFolderPath("folder")
	item1 := path.NewFilePath(folder, "item1")
	item2 := path.NewFilePath(folder, "item2")
	item3 := path.NewFilePath(folder.Child("sub"), "item3")

	mustInsert(ctx, local, item1, "local 1")
	mustInsert(ctx, local, item3, "local 3")
	mustInsert(ctx, remote, item1, "remote 1")
	mustInsert(ctx, remote, item2, "remote 2")

	db, err := reconcile.New(local, remote, reconcile.WithLogger(l))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Before sync ===")
	dump(ctx, "local", local, folder)
	dump(ctx, "remote", remote, folder)

	report, err := db.SyncFolder(ctx, path.Recursive, folder)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Actions ===")
	for _, a := range report.Actions {
		fmt.Printf("%-16s %s (%s)\n", a.Type, a.Path, a.Reason)
	}

	fmt.Println("=== After sync ===")
	dump(ctx, "local", local, folder)
	dump(ctx, "remote", remote, folder)
}

func mustInsert(ctx context.Context, b backend.Backend[string], p path.FilePath, item string) {
	if _, _, err := backend.Insert(ctx, b, p, item); err != nil {
		log.Fatal(err)
	}
}

func dump(ctx context.Context, name string, b backend.Backend[string], scope path.FolderPath) {
	entries, err := b.List(ctx, path.Recursive, scope)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		fmt.Printf("%-6s %-20s %s\n", name, e.Path, e.Item)
	}
}
