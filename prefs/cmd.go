package prefs

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"iconsheet/settings"

	"github.com/alecthomas/kong"
)

// CLICmd manages stored slicing defaults from the command line.
type CLICmd struct {
	Set struct {
		Key   string `arg:"" help:"Default to store."`
		Value string `arg:"" help:"Value to store."`
	} `cmd:"" help:"Store one slicing default."`
	Get struct {
		Key string `arg:"" help:"Default to print."`
	} `cmd:"" help:"Print one stored default."`
	List  struct{} `cmd:"" help:"Print every stored default."`
	Reset struct{} `cmd:"" help:"Drop every stored default."`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var key string
	switch kctx.Selected().Name {
	case "set":
		key = c.Set.Key
	case "get":
		key = c.Get.Key
	default:
		return nil
	}
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown default %q, expected one of %v", key, Keys)
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	ctx := context.Background()
	store, err := OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cont := settings.NewContainer[string](Group)
	switch kctx.Selected().Name {
	case "set":
		cont.SetValue(c.Set.Key, parseValue(c.Set.Value))
		return cont.Write(ctx, store)
	case "get":
		if err := cont.Read(ctx, store); err != nil {
			return err
		}
		if !cont.Contains(c.Get.Key) {
			return fmt.Errorf("no stored default for %q", c.Get.Key)
		}
		fmt.Println(settings.Value(cont, c.Get.Key, ""))
		return nil
	case "list":
		if err := cont.Read(ctx, store); err != nil {
			return err
		}
		for _, key := range cont.Keys() {
			fmt.Printf("%s=%s\n", key, settings.Value(cont, key, ""))
		}
		return nil
	case "reset":
		return store.DeleteGroup(ctx, Group)
	default:
		return fmt.Errorf("unsupported operation %q", kctx.Selected().Name)
	}
}

// parseValue keeps numeric and boolean defaults typed in the store instead
// of flattening everything to text.
func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
