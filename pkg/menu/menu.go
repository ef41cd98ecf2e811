package menu

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	runewidth "github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const menuWidth = 50
const menuHeight = 12
const resultHeight = 20
const resultWidth = 70

// entriesPerPage is how many rows fit in one menu page.
const entriesPerPage = 10

type validCheck func(string) (string, string, bool)

// Entry is one selectable row of a menu.
type Entry interface {
	// Label returns the string shown in the menu.
	Label() string
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Init() error {
	return ui.Init()
}

func Close() {
	ui.Close()
}

// AlwaysValid is an isValid function that accepts any input.
func AlwaysValid(input string) (string, string, bool) {
	return input, "", true
}

// newParagraph returns a widgets.Paragraph with the given initial text.
func newParagraph(initText string, border bool, location int, wid int, ht int) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Text = initText
	p.Border = border
	p.SetRect(0, location, wid, location+ht)
	p.TextStyle.Fg = ui.ColorWhite
	return p
}

// readKey reads one key from the event stream.
func readKey(uiEvents <-chan ui.Event) string {
	for {
		e := <-uiEvents
		if e.Type == ui.KeyboardEvent || e.Type == ui.MouseEvent {
			return e.ID
		}
	}
}

// showCursor parks the terminal cursor where the next typed rune will
// land, so the operator can see the input position. termui itself never
// shows a cursor, and termbox can only place one once Init has run, so
// both helpers are no-ops without a terminal.
func showCursor(x, y int) {
	if !termbox.IsInit {
		return
	}
	termbox.SetCursor(x, y)
	termbox.Flush()
}

func hideCursor() {
	if !termbox.IsInit {
		return
	}
	termbox.HideCursor()
	termbox.Flush()
}

// processInput presents an input box and collects keystrokes until
// isValid accepts the input. When mask is set the box renders one '*'
// per typed rune, for passphrases. <Escape> returns the literal string
// "<Esc>" so callers can treat it as backing out.
func processInput(prompt string, location int, wid int, ht int, mask bool, isValid validCheck, uiEvents <-chan ui.Event) (string, string, error) {
	intro := newParagraph(prompt, false, location, len(prompt)+4, 3)
	location += 2
	input := newParagraph("", true, location, wid, ht+2)
	cursorRow := location + 1
	location += ht + 2
	warning := newParagraph("", false, location, wid, 15)

	typed := ""
	redraw := func() {
		if mask {
			input.Text = strings.Repeat("*", len([]rune(typed)))
		} else {
			input.Text = typed
		}
		ui.Render(input)
		showCursor(1+runewidth.StringWidth(input.Text), cursorRow)
	}

	ui.Render(intro)
	ui.Render(warning)
	redraw()
	defer hideCursor()

	for {
		k := readKey(uiEvents)
		switch k {
		case "<C-d>":
			return typed, warning.Text, io.EOF
		case "<Enter>":
			inputString, warningString, ok := isValid(typed)
			if ok {
				return inputString, warning.Text, nil
			}
			typed = ""
			warning.Text = warningString
			ui.Render(warning)
			redraw()
		case "<Backspace>":
			if r := []rune(typed); len(r) > 0 {
				typed = string(r[:len(r)-1])
				redraw()
			}
		case "<Escape>":
			return "<Esc>", "", nil
		case "<Space>":
			typed += " "
			redraw()
		default:
			// termui reports special keys as strings starting with
			// '<', for example F1 comes in as "<F1>". Only plain
			// runes belong in the input.
			if k[0:1] != "<" {
				typed += k
				redraw()
			}
		}
	}
}

// NewInputWindow opens an input window with fixed width=80, height=1.
func NewInputWindow(prompt string, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	return NewCustomInputWindow(prompt, 80, 1, false, isValid, uiEvents)
}

// NewPasswordWindow is NewInputWindow with the typed text masked.
func NewPasswordWindow(prompt string, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	return NewCustomInputWindow(prompt, 80, 1, true, isValid, uiEvents)
}

// NewCustomInputWindow clears the screen and displays an input box of
// the given size.
func NewCustomInputWindow(prompt string, wid int, ht int, mask bool, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()
	input, _, err := processInput(prompt, 0, wid, ht, mask, isValid, uiEvents)
	return input, err
}

// DisplayResult opens a window and displays a message, one array item
// per line, paged when the message runs long.
func DisplayResult(message []string, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()

	// Split any line wider than the window into shorter ones.
	wid := resultWidth
	text := []string{}
	for _, m := range message {
		for len(m) > wid {
			text = append(text, m[0:wid])
			m = m[wid:]
		}
		text = append(text, m)
	}

	p := widgets.NewParagraph()
	p.Border = true
	p.SetRect(0, 0, wid+2, resultHeight+3)
	p.TextStyle.Fg = ui.ColorWhite

	hint := "(Press any key to continue, press <Esc> to exit.)"
	msgLength := len(text)
	currentLine := 0

	for currentLine < msgLength {
		p.Title = fmt.Sprintf("Message---%v/%v", currentLine, msgLength)
		p.Text = strings.Join(text[currentLine:min(msgLength, currentLine+resultHeight)], "\n") + "\n" + hint
		currentLine += resultHeight
		ui.Render(p)
		switch readKey(uiEvents) {
		case "<C-d>":
			return p.Text, io.EOF
		case "<Escape>":
			return p.Text, nil
		}
	}
	return p.Text, nil
}

// menuPager tracks which slice of the entry labels is on screen.
type menuPager struct {
	menu   *widgets.List
	title  string
	labels []string
	first  int
	last   int
}

func (pg *menuPager) render() {
	pg.menu.Rows = pg.labels[pg.first:pg.last]
	pg.menu.Title = fmt.Sprintf(pg.title+"---%v/%v", pg.first, len(pg.labels))
	ui.Render(pg.menu)
}

// moveTo pins the window so that first stays within the labels and the
// page never shrinks below a full page when there are enough entries.
func (pg *menuPager) moveTo(first int) {
	pg.first = max(0, min(first, max(0, len(pg.labels)-entriesPerPage)))
	pg.last = min(pg.first+entriesPerPage, len(pg.labels))
	pg.render()
}

// scrollDown moves the window one line, keeping a full page visible.
func (pg *menuPager) scrollDown() {
	pg.last = min(pg.last+1, len(pg.labels))
	pg.first = max(0, pg.last-entriesPerPage)
	pg.render()
}

// parsingMenuOption reads the operator's menu keys: digits plus Enter
// select an entry, paging keys move the window.
func parsingMenuOption(labels []string, menu *widgets.List, input, warning *widgets.Paragraph, uiEvents <-chan ui.Event, customWarning ...string) (int, error) {
	if len(labels) == 0 {
		return 0, fmt.Errorf("no entry in the menu")
	}

	pg := &menuPager{menu: menu, title: menu.Title, labels: labels}
	pg.first = 0
	pg.last = min(entriesPerPage, len(labels))
	pg.render()

	for {
		k := readKey(uiEvents)
		switch k {
		case "<C-d>":
			return 0, io.EOF
		case "<Enter>":
			choose := input.Text
			input.Text = ""
			ui.Render(input)
			c, err := strconv.Atoi(choose)
			// The choice must be a number on the current page.
			if err == nil && c >= pg.first && c < pg.last {
				// An entry can carry its own warning, shown
				// instead of being selected.
				if len(customWarning) > c && customWarning[c] != "" {
					warning.Text = customWarning[c]
					ui.Render(warning)
					continue
				}
				return c, nil
			}
			warning.Text = "Please enter a valid entry number."
			ui.Render(warning)
		case "<Backspace>":
			if len(input.Text) > 0 {
				input.Text = input.Text[:len(input.Text)-1]
				ui.Render(input)
			}
		case "<Left>", "<PageUp>":
			pg.moveTo(pg.first - entriesPerPage)
		case "<Right>", "<PageDown>":
			if pg.first+entriesPerPage < len(labels) {
				pg.moveTo(pg.first + entriesPerPage)
			}
		case "<Up>", "<MouseWheelUp>":
			pg.moveTo(pg.first - 1)
		case "<Down>", "<MouseWheelDown>":
			pg.scrollDown()
		case "<Home>":
			pg.moveTo(0)
		case "<End>":
			pg.moveTo(len(labels))
		case "<Space>":
			input.Text += " "
			ui.Render(input)
		default:
			if k[0:1] != "<" {
				input.Text += k
				ui.Render(input)
			}
		}
	}
}

// DisplayMenu presents the entries as a numbered menu and returns the
// one the operator picks. customWarning pins a warning message to an
// entry: picking it shows the warning instead of selecting.
func DisplayMenu(menuTitle string, prompt string, entries []Entry, uiEvents <-chan ui.Event, customWarning ...string) (Entry, error) {
	defer ui.Clear()

	listData := []string{}
	for i, e := range entries {
		listData = append(listData, fmt.Sprintf("[%d] %s", i, e.Label()))
	}

	location := 0
	menu := widgets.NewList()
	menu.Title = menuTitle
	// The menu is always menuHeight tall, one page of entries.
	menu.SetRect(0, location, menuWidth, location+menuHeight)
	location += menuHeight
	menu.TextStyle.Fg = ui.ColorWhite

	intro := newParagraph(prompt, false, location, len(prompt)+4, 3)
	location += 2
	input := newParagraph("", true, location, menuWidth, 3)
	location += 3
	warning := newParagraph("", false, location, menuWidth, 3)

	ui.Render(intro)
	ui.Render(input)
	ui.Render(warning)

	chooseIndex, err := parsingMenuOption(listData, menu, input, warning, uiEvents, customWarning...)
	if err != nil {
		return nil, fmt.Errorf("Fail to read the menu choice: %v", err)
	}

	return entries[chooseIndex], nil
}

// Progress is a small window kept on screen while a slow call runs.
type Progress struct {
	paragraph *widgets.Paragraph
	animated  bool
	sigTerm   chan bool
	ackTerm   chan bool
}

func NewProgress(text string, animated bool) Progress {
	paragraph := widgets.NewParagraph()
	paragraph.Border = true
	paragraph.SetRect(0, 0, resultWidth, 10)
	paragraph.TextStyle.Fg = ui.ColorWhite
	paragraph.Title = "Working"
	paragraph.Text = text
	ui.Render(paragraph)

	progress := Progress{paragraph, animated, make(chan bool), make(chan bool)}
	if animated {
		go progress.animate()
	}
	return progress
}

func (p *Progress) Update(text string) {
	p.paragraph.Text = text
	ui.Render(p.paragraph)
}

func (p *Progress) animate() {
	counter := 0
	for {
		select {
		case <-p.sigTerm:
			p.ackTerm <- true
			return
		default:
			time.Sleep(time.Second)
			pText := p.paragraph.Text
			p.Update(pText + strings.Repeat(".", counter%4))
			p.paragraph.Text = pText
			counter++
		}
	}
}

func (p *Progress) Close() {
	if p.animated {
		p.sigTerm <- true
		<-p.ackTerm
	}
	ui.Clear()
}
