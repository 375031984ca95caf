// Package tui provides the BubbleTea-based product browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/shopfront/internal/adapter/output"
	"github.com/jmylchreest/shopfront/internal/catalog"
	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/core"
	"github.com/jmylchreest/shopfront/internal/model"
	"github.com/jmylchreest/shopfront/internal/typing"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// ProductFetcher loads the current product list.
type ProductFetcher interface {
	Fetch(ctx context.Context) catalog.Result
}

// SoundPlayer plays the new-product cue.
type SoundPlayer interface {
	Play()
}

// sortCycle is the order the sort key steps through.
var sortCycle = []core.SortOptions{
	core.DefaultSortOptions(),
	{Field: core.SortByName, Order: core.SortAsc},
	{Field: core.SortByPrice, Order: core.SortAsc},
	{Field: core.SortByPrice, Order: core.SortDesc},
	{Field: core.SortByStock, Order: core.SortDesc},
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg     *config.Config
	fetcher ProductFetcher
	sound   SoundPlayer
	logger  *slog.Logger

	// Current mode
	mode Mode

	// Components
	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model
	indicator   *typing.Renderer

	// State
	products    []model.Product
	selected    *model.Product
	searchQuery string
	inStockOnly bool
	category    string // "" = all categories
	sortIndex   int
	loaded      bool
	width       int
	height      int
	ready       bool

	// Fetch in flight and its animation clock
	fetching     bool
	ticking      bool
	refreshArmed bool
	fetchStarted time.Time
	frame        time.Time

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// Config reload subscription
	configCh <-chan *config.Config
}

// productItem wraps a product for the list component.
type productItem struct {
	product model.Product
}

func (i productItem) Title() string {
	return i.product.Name
}

func (i productItem) Description() string {
	desc := i.product.FormattedPrice()
	if i.product.Category != "" {
		desc += " [" + i.product.Category + "]"
	}
	desc += " - " + humanize.Comma(int64(i.product.Stock)) + " in stock"
	if age := i.product.Age(); age != "" {
		desc += " - " + age
	}
	return desc
}

func (i productItem) FilterValue() string {
	return i.product.Name + " " + i.product.Description + " " + i.product.Category
}

// productDelegate is a list delegate that dims sold-out products.
type productDelegate struct {
	list.DefaultDelegate
}

func newProductDelegate() productDelegate {
	return productDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// Render renders a list item, greyed out when the product is out of stock.
func (d productDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(productItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	isSelected := index == m.Index()
	soldOut := !pi.product.InStock()

	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	var titleStyle, descStyle lipgloss.Style
	if isSelected {
		titleStyle = d.DefaultDelegate.Styles.SelectedTitle
		descStyle = d.DefaultDelegate.Styles.SelectedDesc
	} else {
		titleStyle = d.DefaultDelegate.Styles.NormalTitle
		descStyle = d.DefaultDelegate.Styles.NormalDesc
	}
	if soldOut {
		titleStyle = titleStyle.Foreground(lipgloss.Color("8"))
		descStyle = descStyle.Foreground(lipgloss.Color("8"))
	}

	title := pi.Title()
	if soldOut {
		title = "[sold out] " + title
	}

	fmt.Fprint(w, titleStyle.Render(truncate(title, itemWidth)))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(truncate(pi.Description(), itemWidth)))
}

// truncate cuts s to width runes with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// New creates a new TUI model.
func New(cfg *config.Config, fetcher ProductFetcher, sound SoundPlayer, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	l := list.New(nil, newProductDelegate(), 0, 0)
	l.Title = "Products"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 100

	return Model{
		cfg:         cfg,
		fetcher:     fetcher,
		sound:       sound,
		logger:      logger,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		help:        help.New(),
		indicator:   typing.NewRenderer(typing.DefaultStyles()),
		keys:        DefaultKeyMap(),
	}
}

// WithConfigUpdates subscribes the model to reloaded configurations.
func (m Model) WithConfigUpdates(ch <-chan *config.Config) Model {
	m.configCh = ch
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshMsg{} },
		m.watchConfig(),
	)
}

type refreshMsg struct{}

type autoRefreshMsg struct{}

type productsLoadedMsg struct {
	result catalog.Result
}

type configReloadedMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// startFetch marks a fetch in flight and starts the indicator clock.
func (m Model) startFetch() (Model, tea.Cmd) {
	if m.fetching || m.fetcher == nil {
		return m, nil
	}
	m.fetching = true
	m.fetchStarted = time.Now()
	m.frame = m.fetchStarted

	cmds := []tea.Cmd{m.fetchProducts()}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, typing.Tick())
	}
	return m, tea.Batch(cmds...)
}

// fetchProducts runs one fetch off the UI goroutine.
func (m Model) fetchProducts() tea.Cmd {
	fetcher := m.fetcher
	timeout := m.cfg.Database.ConnectTimeout.Duration()
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 2*timeout)
			defer cancel()
		}
		return productsLoadedMsg{result: fetcher.Fetch(ctx)}
	}
}

// watchConfig waits for the next reloaded configuration.
func (m Model) watchConfig() tea.Cmd {
	ch := m.configCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// armRefresh schedules the next periodic refresh when one is configured.
// At most one refresh timer is pending at a time.
func (m Model) armRefresh() (Model, tea.Cmd) {
	interval := m.cfg.TUI.RefreshInterval.Duration()
	if interval <= 0 || m.refreshArmed {
		return m, nil
	}
	m.refreshArmed = true
	return m, tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2

		return m, nil

	case refreshMsg:
		return m.startFetch()

	case autoRefreshMsg:
		m.refreshArmed = false
		var cmd tea.Cmd
		m, cmd = m.startFetch()
		if cmd == nil {
			m, cmd = m.armRefresh()
		}
		return m, cmd

	case productsLoadedMsg:
		return m.handleLoaded(msg.result)

	case typing.TickMsg:
		if !m.fetching {
			m.ticking = false
			return m, nil
		}
		m.frame = time.Time(msg)
		return m, typing.Tick()

	case configReloadedMsg:
		m.cfg = msg.cfg
		m.logger.Debug("configuration reloaded",
			"typing_label", msg.cfg.Typing.Label,
			"audio_enabled", msg.cfg.Audio.Enabled,
		)
		var arm tea.Cmd
		if m.loaded {
			m, arm = m.armRefresh()
		}
		return m, tea.Batch(m.watchConfig(), arm, m.setStatus("Configuration reloaded", false))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, m.setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Copied to clipboard", false)
	}

	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleLoaded applies a finished fetch. Products not seen in the previous
// list trigger the notification sound; the first load never does.
func (m Model) handleLoaded(res catalog.Result) (tea.Model, tea.Cmd) {
	m.fetching = false

	var arm tea.Cmd
	m, arm = m.armRefresh()
	cmds := []tea.Cmd{arm}

	if !res.OK() {
		m.logger.Error("error fetching products", "fetch_id", res.FetchID, "error", res.Err)
		cmds = append(cmds, m.setStatus("Fetch failed: "+res.Err.Error(), true))
		return m, tea.Batch(cmds...)
	}

	fresh := core.NewIDs(m.products, res.Products)
	if m.loaded && len(fresh) > 0 {
		m.playSound()
		cmds = append(cmds, m.setStatus(fmt.Sprintf("%d new %s", len(fresh), pluralize(len(fresh), "product")), false))
	}

	m.products = res.Products
	m.loaded = true
	m.list.SetItems(m.buildListItems())

	return m, tea.Batch(cmds...)
}

// playSound plays the cue when audio is enabled.
func (m Model) playSound() {
	if m.sound == nil || !m.cfg.Audio.Enabled {
		return
	}
	m.sound.Play()
}

func (m Model) setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input owns printable keys
	if m.mode == ModeSearch {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	case key.Matches(msg, m.keys.PlaySound):
		m.playSound()
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.openSelected(), nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyVisible(output.FormatJSON)

	case key.Matches(msg, m.keys.CopyYAML):
		return m, m.copyVisible(output.FormatYAML)

	case key.Matches(msg, m.keys.CopyID):
		if item, ok := m.list.SelectedItem().(productItem); ok {
			return m, m.copyToClipboard(item.product.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleInStock):
		m.inStockOnly = !m.inStockOnly
		m.list.SetItems(m.buildListItems())
		if m.inStockOnly {
			return m, m.setStatus("Showing products in stock", false)
		}
		return m, m.setStatus("Showing all products", false)

	case key.Matches(msg, m.keys.CycleCategory):
		m.category = nextCategory(core.Categories(m.products), m.category)
		m.list.SetItems(m.buildListItems())
		if m.category == "" {
			return m, m.setStatus("Showing all categories", false)
		}
		return m, m.setStatus("Category: "+m.category, false)

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortCycle)
		m.list.SetItems(m.buildListItems())
		opts := sortCycle[m.sortIndex]
		return m, m.setStatus(fmt.Sprintf("Sorted by %s (%s)", opts.Field, opts.Order), false)

	case key.Matches(msg, m.keys.Search):
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m.startFetch()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copyProducts([]model.Product{*m.selected}, output.FormatJSON)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyYAML):
		if m.selected != nil {
			return m, m.copyProducts([]model.Product{*m.selected}, output.FormatYAML)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyID):
		if m.selected != nil {
			return m, m.copyToClipboard(m.selected.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		return m, nil

	case tea.KeyEnter:
		m.searchInput.Blur()
		return m.openSelected(), nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filtering on each keystroke
	m.searchQuery = m.searchInput.Value()
	m.list.SetItems(m.buildListItems())

	return m, cmd
}

// nextCategory steps through categories, wrapping back to "" (all).
func nextCategory(categories []string, current string) string {
	if current == "" {
		if len(categories) == 0 {
			return ""
		}
		return categories[0]
	}
	for i, c := range categories {
		if c == current && i+1 < len(categories) {
			return categories[i+1]
		}
	}
	return ""
}

// openSelected switches to the detail view of the selected product.
func (m Model) openSelected() Model {
	item, ok := m.list.SelectedItem().(productItem)
	if !ok {
		return m
	}
	p := item.product
	m.selected = &p
	m.mode = ModeDetail
	m.viewport.SetContent(m.renderDetail(p))
	m.viewport.GotoTop()
	return m
}

// visibleProducts applies the stock filter, search and sort order.
func (m Model) visibleProducts() []model.Product {
	products := core.Filter(m.products, core.FilterOptions{
		Category:    m.category,
		InStockOnly: m.inStockOnly,
	})
	products = core.Search(products, m.searchQuery)
	core.Sort(products, sortCycle[m.sortIndex])
	return products
}

// buildListItems creates list items from the visible products.
func (m Model) buildListItems() []list.Item {
	products := m.visibleProducts()
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p}
	}
	return items
}

// renderDetail renders the detail view for a product.
func (m Model) renderDetail(p model.Product) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	s := headerStyle.Render(p.Name) + "\n\n"

	s += labelStyle.Render("ID: ") + p.ID + "\n"
	s += labelStyle.Render("Price: ") + p.FormattedPrice() + "\n"
	if p.Category != "" {
		s += labelStyle.Render("Category: ") + p.Category + "\n"
	}
	s += labelStyle.Render("Stock: ") + humanize.Comma(int64(p.Stock)) + "\n"
	if age := p.Age(); age != "" {
		s += labelStyle.Render("Added: ") + age + "\n"
	}
	if p.ImageURL != "" {
		s += labelStyle.Render("Image: ") + p.ImageURL + "\n"
	}

	if p.Description != "" {
		s += "\n" + labelStyle.Render("Description:") + "\n"
		s += lipgloss.NewStyle().Width(m.viewport.Width).Render(p.Description) + "\n"
	}

	return s
}

// copyVisible copies the products currently listed.
func (m Model) copyVisible(format output.FormatType) tea.Cmd {
	items := m.list.Items()
	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		if pi, ok := item.(productItem); ok {
			products = append(products, pi.product)
		}
	}
	return m.copyProducts(products, format)
}

func (m Model) copyProducts(products []model.Product, format output.FormatType) tea.Cmd {
	text, err := encodeProducts(products, format)
	if err != nil {
		return m.setStatus(fmt.Sprintf("Failed to encode %s: %s", format, err), true)
	}
	return m.copyToClipboard(text)
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, cfg)}
	}
}

// typingView draws the fetch indicator, or "" when idle.
func (m Model) typingView() string {
	node := typing.Render(typing.Props{
		IsTyping:  m.fetching,
		Label:     m.cfg.Typing.Label,
		ClassName: "status",
	})
	return m.indicator.View(node, m.frame.Sub(m.fetchStarted))
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

// footer shows, in order of precedence, the fetch indicator, the status
// message or the keybind bar.
func (m Model) footer(mode string) string {
	if m.fetching {
		return m.typingView()
	}
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}
	if !m.cfg.TUI.ShowHelp {
		return ""
	}
	return m.buildKeybindBar(m.width, mode)
}

func (m Model) viewList() string {
	return m.list.View() + "\n" + m.footer("list")
}

func (m Model) viewDetail() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	header := headerStyle.Render("Product Detail")

	return header + "\n" + m.viewport.View() + "\n" + m.footer("detail")
}

func (m Model) viewSearch() string {
	countStr := fmt.Sprintf("(%d matches)", len(m.list.Items()))

	searchBar := "Search: " + m.searchInput.View() + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.footer("search")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Navigation") + "\n"
	s += keyStyle.Render("  j/k, ↑/↓") + "     Move up/down\n"
	s += keyStyle.Render("  g/G") + "          Go to top/bottom\n"
	s += keyStyle.Render("  pgup/pgdn") + "    Page up/down\n"
	s += "\n"

	s += sectionStyle.Render("Actions") + "\n"
	s += keyStyle.Render("  enter") + "        View product details\n"
	s += keyStyle.Render("  c") + "            Copy as JSON\n"
	s += keyStyle.Render("  y") + "            Copy as YAML\n"
	s += keyStyle.Render("  i") + "            Copy product id\n"
	s += keyStyle.Render("  a") + "            Toggle in stock only\n"
	s += keyStyle.Render("  t") + "            Cycle category\n"
	s += keyStyle.Render("  o") + "            Cycle sort order\n"
	s += keyStyle.Render("  /") + "            Search\n"
	s += keyStyle.Render("  r") + "            Refresh from source\n"
	s += keyStyle.Render("  n") + "            Play notification sound\n"
	s += "\n"

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "            Toggle this help\n"
	s += keyStyle.Render("  esc") + "          Back / Cancel\n"
	s += keyStyle.Render("  q") + "            Quit\n"

	s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "list", "detail", "search"
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind

	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "view", 2},
			{"?", "help", 3},
			{"/", "search", 4},
			{"r", "refresh", 5},
			{"a", "in stock", 6},
			{"t", "category", 7},
			{"o", "sort", 8},
			{"c", "json", 9},
			{"y", "yaml", 10},
		}
	case "detail":
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "back", 2},
			{"c", "copy json", 3},
			{"i", "copy id", 4},
			{"j/k", "scroll", 5},
		}
	case "search":
		binds = []keybind{
			{"enter", "view", 1},
			{"esc", "close", 2},
			{"↑/↓", "navigate", 3},
		}
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(b.key + " " + b.desc)
		if result != "" {
			testLen += lipgloss.Width(result) + len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	Fetcher    ProductFetcher
	Sound      SoundPlayer
	Logger     *slog.Logger
	ConfigPath string // Config file to watch for changes (empty = no watching)
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(opts.Config, opts.Fetcher, opts.Sound, logger)

	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer func() { _ = watcher.Stop() }()
			m = m.WithConfigUpdates(watcher.Updates())
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
