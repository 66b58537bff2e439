// Package entity строит команды для всех экранов панели по их определениям.
package entity

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"fitclub/cmd/client/cmd/types"
	"fitclub/internal/app/client"
	domain "fitclub/internal/domain/entity"
	"fitclub/internal/domain/filter"
)

// Commands возвращает по команде на каждый экран и на каждый список с
// фильтрами, у которого нет своего экрана.
func Commands() []*cobra.Command {
	var out []*cobra.Command
	for _, def := range domain.Registry() {
		out = append(out, command(def))
	}
	for _, f := range filter.Registry() {
		if _, ok := domain.Lookup(f.Name); ok {
			continue
		}
		c := &cobra.Command{Use: f.Name, Short: "Список " + f.BasePath}
		c.AddCommand(listCmd(f.Name, f.BasePath))
		out = append(out, c)
	}
	return out
}

func command(def domain.Definition) *cobra.Command {
	c := &cobra.Command{
		Use:   def.Name,
		Short: def.Title,
	}

	c.AddCommand(listCmd(def.Name, def.ListPath))
	if def.CanCreate() {
		c.AddCommand(createCmd(def))
	}
	if def.CanRead() {
		c.AddCommand(getCmd(def))
	}
	if def.CanUpdate() {
		c.AddCommand(editCmd(def))
	}
	if def.CanDelete() {
		c.AddCommand(deleteCmd(def))
	}
	if def.Photo != nil {
		c.AddCommand(photoCmd(def))
	}
	if def.Related != nil {
		c.AddCommand(relatedCmd(def))
	}
	return c
}

type session struct {
	rt   *types.Runtime
	def  domain.Definition
	ctrl *client.Controller
	page *client.Page
}

func open(cmd *cobra.Command, def domain.Definition) (*session, error) {
	rt, err := types.From(cmd.Context())
	if err != nil {
		return nil, err
	}
	ctrl, err := rt.App.Controller(def.Name)
	if err != nil {
		return nil, err
	}
	page, err := rt.App.Page(def.Name)
	if err != nil {
		return nil, err
	}
	return &session{rt: rt, def: def, ctrl: ctrl, page: page}, nil
}

type assignment struct {
	name  string
	value string
}

// parseSets разбирает значения флагов --set вида name=value.
func parseSets(sets []string) ([]assignment, error) {
	out := make([]assignment, 0, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("ожидается name=value, получено %q", s)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

func apply(form *client.FormBinding, sets []assignment) error {
	for _, s := range sets {
		if err := form.Set(s.name, s.value); err != nil {
			return err
		}
	}
	return nil
}

// readFile читает файл для поля формы field.
func readFile(field, path string) (client.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.File{}, errors.Wrap(err, "чтение файла")
	}
	return client.File{Field: field, Name: filepath.Base(path), Data: data}, nil
}

func photoField(def domain.Definition) string {
	if def.Photo != nil && def.Photo.Field != "" {
		return def.Photo.Field
	}
	return "photo"
}
