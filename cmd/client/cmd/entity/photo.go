package entity

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitclub/internal/app/client"
	domain "fitclub/internal/domain/entity"
)

func photoCmd(def domain.Definition) *cobra.Command {
	c := &cobra.Command{
		Use:   "photo",
		Short: "Фото записи: " + def.Title,
	}
	if def.Photo.UploadPath != "" {
		c.AddCommand(photoUploadCmd(def))
	}
	if def.Photo.DeletePath != "" {
		c.AddCommand(photoDeleteCmd(def))
	}
	if def.Photo.ViewPath != "" {
		c.AddCommand(photoShowCmd(def))
	}
	return c
}

func photoUploadCmd(def domain.Definition) *cobra.Command {
	return &cobra.Command{
		Use:   "upload [id] [file]",
		Short: "Загрузить фото",
		Long:  "Проверяет, что файл - изображение, показывает его тип и размер и только потом отправляет.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}
			file, err := readFile(photoField(def), args[1])
			if err != nil {
				return err
			}

			preview, err := client.PreviewPhoto(file)
			if err != nil {
				return err
			}
			s.rt.Term.ShowPreview(preview)

			_, err = s.page.Do(cmd.Context(), func(ctx context.Context) (*client.Outcome, error) {
				return s.ctrl.UploadPhoto(ctx, args[0], file)
			})
			return err
		},
	}
}

func photoDeleteCmd(def domain.Definition) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить фото",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}
			_, err = s.page.Do(cmd.Context(), func(ctx context.Context) (*client.Outcome, error) {
				return s.ctrl.DeletePhoto(ctx, args[0])
			})
			return err
		},
	}
}

func photoShowCmd(def domain.Definition) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "show [id]",
		Short: "Скачать фото",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}

			var photo *client.Download
			err = s.page.Open(cmd.Context(), func(ctx context.Context) error {
				photo, err = s.ctrl.FetchPhoto(ctx, args[0])
				return err
			})
			if err != nil || photo == nil {
				return err
			}

			if output == "" {
				fmt.Printf("Фото: %s, %d байт\n", photo.ContentType, len(photo.Data))
				return nil
			}
			if err := os.WriteFile(output, photo.Data, 0o644); err != nil {
				return fmt.Errorf("ошибка записи файла: %w", err)
			}
			s.rt.Term.Success("Фото сохранено в " + output)
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "сохранить фото в файл")
	return c
}

func relatedCmd(def domain.Definition) *cobra.Command {
	return &cobra.Command{
		Use:     "related [id]",
		Aliases: []string{"enrollments"},
		Short:   "Связанные записи",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, def)
			if err != nil {
				return err
			}

			var tbl *client.Table
			err = s.page.Open(cmd.Context(), func(ctx context.Context) error {
				tbl, err = s.ctrl.Related(ctx, args[0])
				return err
			})
			if err != nil || tbl == nil {
				return err
			}
			s.rt.Term.ShowTable(def.Title+" #"+args[0], tbl)
			return nil
		},
	}
}
