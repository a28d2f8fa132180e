package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"GroceryWise/internal/cli/service"
	"GroceryWise/internal/config"
	"GroceryWise/internal/model"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать список покупок" }
func (itemsCmd) Usage() string       { return "items [-skip N] [-limit N]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	skip := fs.Int("skip", 0, "сколько позиций пропустить")
	limit := fs.Int("limit", 100, "максимум позиций в ответе")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	if *skip < 0 || *limit < 0 {
		return ErrUsage
	}

	list, err := newClient(cfg).ListItems(ctx, *skip, *limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Список пуст")
		return nil
	}
	for _, it := range list {
		mark := " "
		if it.Status == model.StatusPurchased {
			mark = "x"
		}
		fmt.Fprintf(Out, "[%s] %d  %s  x%d\n", mark, it.ID, it.Name, it.Quantity)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Добавить позицию (статус по умолчанию pending)" }
func (itemAddCmd) Usage() string       { return "item-add <name> <quantity> [pending|purchased]" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty <= 0 {
		return ErrUsage
	}
	status := ""
	if len(args) == 3 {
		if _, err := model.ParseGroceryStatus(args[2]); err != nil {
			return ErrUsage
		}
		status = args[2]
	}

	it, err := newClient(cfg).AddItem(ctx, args[0], qty, status)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	printItem(it)
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Показать позицию по id" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	it, err := newClient(cfg).GetItem(ctx, id)
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Изменить поля позиции: имя, количество, статус"
}
func (itemEditCmd) Usage() string {
	return "item-edit <id> [-name <name>] [-quantity N] [-status pending|purchased]"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// сначала позиционный id, за ним флаги изменяемых полей
	if len(args) < 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("item-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "новое название")
	quantity := fs.Int("quantity", 0, "новое количество")
	status := fs.String("status", "", "новый статус: pending|purchased")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	var patch service.ItemPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "quantity":
			patch.Quantity = quantity
		case "status":
			patch.Status = status
		}
	})
	if patch.Name == nil && patch.Quantity == nil && patch.Status == nil {
		return ErrUsage
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return ErrUsage
	}
	if patch.Status != nil {
		if _, err := model.ParseGroceryStatus(*patch.Status); err != nil {
			return ErrUsage
		}
	}

	it, err := newClient(cfg).EditItem(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	printItem(it)
	return nil
}

type itemRmCmd struct{}

func (itemRmCmd) Name() string        { return "item-rm" }
func (itemRmCmd) Description() string { return "Удалить позицию" }
func (itemRmCmd) Usage() string       { return "item-rm <id>" }

func (itemRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := newClient(cfg).DeleteItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %d\n", id)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrUsage
	}
	return id, nil
}

func printItem(it *model.GroceryItem) {
	fmt.Fprintf(Out, "  id:       %d\n", it.ID)
	fmt.Fprintf(Out, "  name:     %s\n", it.Name)
	fmt.Fprintf(Out, "  quantity: %d\n", it.Quantity)
	fmt.Fprintf(Out, "  status:   %s\n", it.Status)
	fmt.Fprintf(Out, "  updated:  %s\n", it.UpdatedAt.Format("2006-01-02 15:04"))
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemGetCmd{})
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemRmCmd{})
}
