package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"

	"fitclub/internal/domain/entity"
)

// File - файл, прикрепленный к форме.
type File struct {
	Field string
	Name  string
	Data  []byte
}

// Form - тело запроса на создание или обновление.
type Form struct {
	Encoding entity.Encoding
	Values   url.Values
	Files    []File
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode возвращает тело и Content-Type запроса.
func (f *Form) encode() (io.Reader, string, error) {
	switch f.Encoding {
	case entity.EncodingForm:
		if len(f.Files) > 0 {
			return nil, "", errors.New("файлы нельзя отправить в urlencoded-форме")
		}
		return strings.NewReader(f.Values.Encode()), string(entity.EncodingForm), nil
	case entity.EncodingMultipart:
		return f.multipart()
	}
	return nil, "", errors.Errorf("неизвестная кодировка формы: %q", f.Encoding)
}

func (f *Form) multipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(f.Values))
	for k := range f.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range f.Values[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", errors.Wrapf(err, "поле %q", k)
			}
		}
	}

	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
		h.Set("Content-Type", mimetype.Detect(file.Data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "файл %q", file.Name)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", errors.Wrapf(err, "файл %q", file.Name)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "multipart")
	}
	return &buf, w.FormDataContentType(), nil
}
