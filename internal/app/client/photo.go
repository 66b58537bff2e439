package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"

	"fitclub/internal/domain/entity"
)

// Preview - локальный предпросмотр фото до отправки.
type Preview struct {
	MIME    string
	Size    int
	DataURL string
}

// PreviewPhoto строит data URL из содержимого файла. Сеть не используется.
func PreviewPhoto(file File) (*Preview, error) {
	if len(file.Data) == 0 {
		return nil, errors.Errorf("файл %q пуст", file.Name)
	}
	mt := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, errors.Errorf("файл %q не является изображением (%s)", file.Name, mt.String())
	}
	return &Preview{
		MIME:    mt.String(),
		Size:    len(file.Data),
		DataURL: "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(file.Data),
	}, nil
}

func (c *Controller) photoDef(need func(*entity.Photo) string) (*entity.Photo, error) {
	if c.def.Photo == nil || need(c.def.Photo) == "" {
		return nil, errors.Wrapf(ErrNotSupported, "фото: %s", c.def.Name)
	}
	return c.def.Photo, nil
}

// UploadPhoto показывает предпросмотр файла и отправляет его в подресурс
// фото записи. Неподходящий файл отклоняется до запроса.
func (c *Controller) UploadPhoto(ctx context.Context, id string, file File) (*Outcome, error) {
	photo, err := c.photoDef(func(p *entity.Photo) string { return p.UploadPath })
	if err != nil {
		return nil, err
	}

	preview, err := PreviewPhoto(file)
	if err != nil {
		return nil, err
	}

	unlock, err := lock(c.photo, busyLabel)
	if err != nil {
		return nil, err
	}
	defer unlock()

	file.Field = photo.Field
	form := &Form{Encoding: entity.EncodingMultipart, Files: []File{file}}
	res, err := c.api.Send(ctx, http.MethodPost, entity.Path(photo.UploadPath, id), form)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err("Не удалось загрузить фото")
	}

	c.log.Info("Фото загружено", "id", id, "mime", preview.MIME, "size", preview.Size)
	return &Outcome{Message: res.Text("Фото загружено"), Reload: true, Preview: preview}, nil
}

// DeletePhoto удаляет фото записи, не трогая саму запись.
func (c *Controller) DeletePhoto(ctx context.Context, id string) (*Outcome, error) {
	photo, err := c.photoDef(func(p *entity.Photo) string { return p.DeletePath })
	if err != nil {
		return nil, err
	}

	prompt := photo.DeleteConfirm
	if prompt == "" {
		prompt = "Удалить фотографию?"
	}
	if !c.confirm.Confirm(prompt) {
		return nil, ErrCancelled
	}

	res, err := c.api.Send(ctx, http.MethodDelete, entity.Path(photo.DeletePath, id), nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err("Не удалось удалить фото")
	}
	return &Outcome{Message: res.Text("Фото удалено"), Reload: true}, nil
}

// FetchPhoto загружает фото записи.
func (c *Controller) FetchPhoto(ctx context.Context, id string) (*Download, error) {
	photo, err := c.photoDef(func(p *entity.Photo) string { return p.ViewPath })
	if err != nil {
		return nil, err
	}
	return c.api.Download(ctx, entity.Path(photo.ViewPath, id))
}
