// Package terminal реализует интерфейс пользователя клиента в консоли:
// уведомления, подтверждения, формы и вывод списков.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"fitclub/internal/app/client"
	"fitclub/internal/domain/entity"
)

// Terminal - client.UI поверх потоков ввода-вывода.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	assumeYes   bool
	interactive bool
	json        bool

	success *color.Color
	failure *color.Color
	title   *color.Color

	mu sync.Mutex
}

var _ client.UI = (*Terminal)(nil)

// Option настраивает Terminal.
type Option func(*Terminal)

// WithAssumeYes отвечает "да" на все подтверждения.
func WithAssumeYes(yes bool) Option {
	return func(t *Terminal) { t.assumeYes = yes }
}

// WithJSON переключает вывод списков в JSON.
func WithJSON(on bool) Option {
	return func(t *Terminal) { t.json = on }
}

// WithInteractive указывает, можно ли задавать вопросы пользователю.
func WithInteractive(on bool) Option {
	return func(t *Terminal) { t.interactive = on }
}

// WithoutColor отключает цвета.
func WithoutColor() Option {
	return func(t *Terminal) {
		t.success.DisableColor()
		t.failure.DisableColor()
		t.title.DisableColor()
	}
}

func New(in io.Reader, out, errOut io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:          bufio.NewReader(in),
		out:         out,
		errOut:      errOut,
		interactive: true,
		success:     color.New(color.FgGreen),
		failure:     color.New(color.FgRed),
		title:       color.New(color.Bold),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stdio возвращает Terminal для стандартных потоков. Вопросы задаются
// только если stdin - терминал.
func Stdio(opts ...Option) *Terminal {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return New(os.Stdin, os.Stdout, os.Stderr, append([]Option{WithInteractive(interactive)}, opts...)...)
}

func (t *Terminal) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.success.Fprintln(t.errOut, "✅ "+msg)
}

func (t *Terminal) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failure.Fprintln(t.errOut, "❌ "+msg)
}

// Confirm задает вопрос и ждет ответа "y" или "да". Без терминала и без
// --yes действие отменяется.
func (t *Terminal) Confirm(prompt string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.assumeYes {
		fmt.Fprintf(t.errOut, "%s [y/N]: y\n", prompt)
		return true
	}
	if !t.interactive {
		fmt.Fprintf(t.errOut, "%s\nНет терминала для подтверждения, используйте --yes\n", prompt)
		return false
	}

	fmt.Fprintf(t.errOut, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.errOut)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

// Modal возвращает окно формы, которое печатает поля в консоль.
func (t *Terminal) Modal(name, kind string) client.Modal {
	return &modal{t: t, name: name, kind: kind}
}

type modal struct {
	t    *Terminal
	name string
	kind string

	mu    sync.Mutex
	shown bool
}

func (m *modal) Show(title string, inputs []client.Input) {
	m.mu.Lock()
	m.shown = true
	m.mu.Unlock()

	m.t.mu.Lock()
	defer m.t.mu.Unlock()
	m.t.title.Fprintf(m.t.out, "== %s ==\n", title)
	for _, in := range inputs {
		if in.Field.Label == "" {
			continue
		}
		fmt.Fprintf(m.t.out, "  %s (%s): %s\n", in.Field.Label, in.Field.Name, inputText(in))
		for _, o := range in.Options {
			mark := " "
			if o.Value == in.Value {
				mark = "*"
			}
			fmt.Fprintf(m.t.out, "    %s %s - %s\n", mark, o.Value, o.Label)
		}
	}
}

func (m *modal) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = false
}

func (m *modal) Shown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

func inputText(in client.Input) string {
	switch {
	case in.Field.Kind == entity.KindBool && in.Checked():
		return "да"
	case in.Field.Kind == entity.KindBool:
		return "нет"
	case in.Value == "":
		return "-"
	}
	return in.Value
}
