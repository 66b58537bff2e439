package entity

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fitclub/cmd/client/cmd/types"
	"fitclub/internal/domain/filter"
)

func listCmd(name, listPath string) *cobra.Command {
	def, hasFilters := filter.Lookup(name)

	var (
		local bool
		query string
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "Показать список " + listPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := types.From(cmd.Context())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if !hasFilters {
				return rt.App.Navigator().Assign(ctx, listPath)
			}

			inputs := filter.MapInputs{}
			fc, err := rt.App.Filters(name, inputs)
			if err != nil {
				return err
			}

			if query != "" {
				q, err := url.ParseQuery(query)
				if err != nil {
					return fmt.Errorf("неверная строка запроса: %w", err)
				}
				fc.Load(q)
			}
			if err := readFlags(cmd, def.Controls, inputs); err != nil {
				return err
			}

			if local {
				doc, err := rt.App.Document(ctx, def.BasePath)
				if err != nil {
					return err
				}
				if _, err := fc.ApplyInPage(doc, time.Now()); err != nil {
					return err
				}
				rt.Term.ShowList(def.BasePath, doc)
			} else if _, err := fc.ApplyFilters(ctx); err != nil {
				return err
			}

			if label := fc.StatusLabel(); label != "" {
				fmt.Fprintf(os.Stderr, "Фильтр: %s\n", label)
			}
			return nil
		},
	}

	if !hasFilters {
		return c
	}

	for _, ctl := range def.Controls {
		if ctl.Kind == filter.KindCheckbox {
			c.Flags().Bool(ctl.Name, false, ctl.Label)
		} else {
			c.Flags().String(ctl.Name, "", ctl.Label)
		}
	}
	c.Flags().StringVar(&query, "query", "", "восстановить фильтры из строки запроса (a=1&b=2)")
	if def.Rows != nil {
		c.Flags().BoolVar(&local, "local", false, "фильтровать загруженную страницу без запроса к серверу")
	}
	return c
}

// readFlags переносит заданные флаги в элементы фильтра.
func readFlags(cmd *cobra.Command, controls []filter.Control, inputs filter.Inputs) error {
	for _, ctl := range controls {
		if !cmd.Flags().Changed(ctl.Name) {
			continue
		}
		if ctl.Kind == filter.KindCheckbox {
			on, err := cmd.Flags().GetBool(ctl.Name)
			if err != nil {
				return err
			}
			value := ""
			if on {
				value = filter.On
			}
			inputs.SetValue(ctl.Name, value)
			continue
		}
		value, err := cmd.Flags().GetString(ctl.Name)
		if err != nil {
			return err
		}
		inputs.SetValue(ctl.Name, value)
	}
	return nil
}
