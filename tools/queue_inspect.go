package main

import (
	"context"
	"fmt"
	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
	"livechat/infrastructure/storage"
	"livechat/internal"
	"strconv"
	"time"
)

func buildQueueCmd() *cobra.Command {
	var (
		department string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List pending chats with their rank, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueue(cmd.Context(), department, limit)
		},
	}
	cmd.Flags().StringVar(&department, "department", "", "Rank within one department")
	cmd.Flags().IntVar(&limit, "limit", 50, "Max number of chats")
	return cmd
}

func runQueue(ctx context.Context, department string, limit int) error {
	db, err := openDB(dbPath, false)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	defer db.Close()

	var filter *string
	if department != "" {
		filter = &department
	}
	chats := storage.NewChatRepository(db, quietLogger())
	pending, err := chats.FindPending(ctx, filter, limit)
	if err != nil {
		return err
	}

	table := newTable("Position", "Chat ID", "Visitor", "Priority", "Department", "Created", "Waiting")
	now := time.Now()
	for i, chat := range pending {
		table.Append([]string{
			strconv.Itoa(i + 1),
			chat.ID,
			chat.VisitorID,
			string(chat.Priority),
			chat.Metadata.Department,
			chat.CreatedAt.Format("15:04:05"),
			now.Sub(chat.CreatedAt).Truncate(time.Second).String(),
		})
	}
	table.Render()
	return nil
}

func buildKeysCmd() *cobra.Command {
	var (
		prefix string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Dump raw keys under a prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(prefix, limit)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "pending:all:", "Prefix to scan")
	cmd.Flags().IntVar(&limit, "limit", 200, "Max number of keys")
	return cmd
}

func runKeys(prefix string, limit int) error {
	db, err := openDB(dbPath, false)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	defer db.Close()

	table := newTable("Key", "Namespace", "Timestamp", "Entity ID", "Detail")
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		count := 0
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && count < limit; it.Next() {
			item := it.Item()
			row := internal.KeyMapper(string(item.Key()), int(item.ValueSize()))
			table.Append([]string{row.Key, row.Namespace, row.Timestamp, row.EntityID, row.Detail})
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}
