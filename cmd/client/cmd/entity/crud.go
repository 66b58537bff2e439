package entity

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fitclub/internal/app/client"
	domain "fitclub/internal/domain/entity"
)

func createCmd(def domain.Definition) *cobra.Command {
	var (
		sets   []string
		file   string
		dryRun bool
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Создать запись: " + def.Title,
		Long: fmt.Sprintf(`Создает запись "%s". Значения полей задаются флагами --set name=value,
списки (тренер, зона, тариф) заполняются с сервера перед показом формы.`, def.Title),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}
			assignments, err := parseSets(sets)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			form := s.ctrl.CreateForm()
			s.ctrl.PrepareCreate(ctx)
			if err := apply(form, assignments); err != nil {
				return err
			}
			if file != "" {
				f, err := readFile(photoField(def), file)
				if err != nil {
					return err
				}
				form.Attach(f)
			}

			if err := s.page.Open(ctx, func(context.Context) error { return s.ctrl.OpenCreate() }); err != nil {
				return err
			}
			if dryRun {
				return nil
			}
			_, err = s.page.Do(ctx, s.ctrl.SubmitCreate)
			return err
		},
	}

	c.Flags().StringArrayVar(&sets, "set", nil, "значение поля name=value (можно несколько раз)")
	c.Flags().StringVar(&file, "file", "", "файл для отправки вместе с формой")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "только показать форму, не отправлять")
	return c
}

func getCmd(def domain.Definition) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Просмотреть запись: " + def.Title,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}

			var raw domain.Raw
			err = s.page.Open(cmd.Context(), func(ctx context.Context) error {
				raw, err = s.ctrl.Fetch(ctx, args[0])
				return err
			})
			if err != nil || raw == nil {
				return err
			}
			return s.rt.Term.ShowRecord(raw)
		},
	}
}

func editCmd(def domain.Definition) *cobra.Command {
	var (
		sets []string
		file string
	)

	long := fmt.Sprintf(`Открывает форму записи "%s" и отправляет изменения.
Без флагов --set и --file форма только показывается.`, def.Title)
	switch {
	case def.Row != nil:
		long += `

Сервер не отдает эту запись по id, поэтому форма заполняется из строки
страницы списка, а флаги --set меняют отдельные поля.`
	case !def.CanRead():
		long += `

Сервер не отдает эту запись по id, поэтому форма заполняется только из
флагов --set.`
	}

	c := &cobra.Command{
		Use:   "edit [id]",
		Short: "Изменить запись: " + def.Title,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}
			assignments, err := parseSets(sets)
			if err != nil {
				return err
			}

			id := args[0]
			ctx := cmd.Context()
			err = s.page.Open(ctx, func(ctx context.Context) error {
				if def.CanRead() || def.Row != nil {
					return s.ctrl.OpenEdit(ctx, id)
				}
				raw := domain.Raw{}
				for _, a := range assignments {
					raw[a.name] = a.value
				}
				return s.ctrl.OpenEditWith(ctx, id, raw)
			})
			if err != nil {
				return err
			}

			form := s.ctrl.EditForm()
			if err := apply(form, assignments); err != nil {
				return err
			}
			if file != "" {
				f, err := readFile(photoField(def), file)
				if err != nil {
					return err
				}
				form.Attach(f)
			}
			if len(assignments) == 0 && file == "" {
				return nil
			}

			_, err = s.page.Do(ctx, func(ctx context.Context) (*client.Outcome, error) {
				return s.ctrl.SubmitEdit(ctx, id)
			})
			return err
		},
	}

	c.Flags().StringArrayVar(&sets, "set", nil, "новое значение поля name=value (можно несколько раз)")
	c.Flags().StringVar(&file, "file", "", "файл для отправки вместе с формой")
	return c
}

func deleteCmd(def domain.Definition) *cobra.Command {
	var name string

	c := &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить запись: " + def.Title,
		Long: `Удаляет запись после подтверждения. Без терминала подтверждение
дается флагом --yes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}

			label := name
			if label == "" {
				label = s.ctrl.DisplayName(cmd.Context(), args[0])
			}
			_, err = s.page.Do(cmd.Context(), func(ctx context.Context) (*client.Outcome, error) {
				return s.ctrl.Delete(ctx, args[0], label, nil)
			})
			return err
		},
	}

	c.Flags().StringVar(&name, "name", "", "имя записи для вопроса подтверждения (по умолчанию берется с сервера)")
	return c
}
