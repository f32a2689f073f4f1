package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"feedpad/internal/api"
	"feedpad/internal/clipboard"
	"feedpad/internal/content"
	"feedpad/internal/feedsync"
	"feedpad/internal/render"
	"feedpad/internal/session"
	"feedpad/internal/tui/state"
)

const requestTimeout = 10 * time.Second

// Transport is the slice of the API client the view needs.
type Transport interface {
	GetFeed(ctx context.Context, name string) (api.Feed, error)
	Authenticate(ctx context.Context, name, credential string) (string, error)
	SetPIN(ctx context.Context, name, pin string) error
	GetItem(ctx context.Context, feed, item string) ([]byte, string, error)
	RenameItem(ctx context.Context, feed, item, newName string) error
	DeleteItem(ctx context.Context, feed, item string) error
	EmptyFeed(ctx context.Context, feed string) error
	PushText(ctx context.Context, feed, text string) error
	SetSecret(secret string)
}

// CredentialSaver persists a redeemed feed secret for later launches.
type CredentialSaver func(feed, secret, pushKey string) error

// StreamFunc feeds real-time change events into the channel until the
// context is cancelled.
type StreamFunc func(ctx context.Context, feed, secret string, events chan<- api.Event) error

type phase int

const (
	phaseAuthenticating phase = iota
	phasePin
	phaseFatal
	phaseList
	phaseDetail
)

type inputMode int

const (
	inputNone inputMode = iota
	inputRename
	inputCompose
	inputSetPIN
)

type redemptionResultMsg struct {
	secret string
	err    error
}

type metadataResultMsg struct {
	feedName string
	feed     api.Feed
	err      error
}

type pinResultMsg struct {
	secret string
	err    error
}

type refreshResultMsg struct {
	feedName string
	feed     api.Feed
	err      error
}

type itemTextMsg struct {
	feedName string
	itemName string
	kind     content.Kind
	text     string
	err      error
}

type deleteResultMsg struct {
	feedName string
	itemName string
	err      error
}

type renameResultMsg struct {
	feedName string
	oldName  string
	newName  string
	err      error
}

type purgeResultMsg struct {
	feedName string
	err      error
}

type setPinResultMsg struct {
	err error
}

type pushResultMsg struct {
	feedName string
	err      error
}

type copyDoneMsg struct {
	status string
}

type copyImageResultMsg struct {
	err error
}

type saveItemResultMsg struct {
	path string
	err  error
}

type exportResultMsg struct {
	path string
	err  error
}

type streamEventMsg struct {
	feedName string
	event    api.Event
	ok       bool
}

type clearStatusMsg struct {
	id int
}

type credentialSaveErrorMsg struct {
	err error
}

// Options wires a Model to its collaborators.
type Options struct {
	Transport      Transport
	Session        *session.Session
	Sync           *feedsync.Projection
	Clipboard      *clipboard.Bridge
	Log            zerolog.Logger
	ServerURL      string
	NavSecret      string
	SaveCredential CredentialSaver
	Stream         StreamFunc
}

type Model struct {
	transport Transport
	sess      *session.Session
	sync      *feedsync.Projection
	clip      *clipboard.Bridge
	log       zerolog.Logger
	serverURL string

	// navSecret is the one-time secret from the launch target; cleared the
	// moment redemption succeeds so it never shows up anywhere again.
	navSecret      string
	saveCredential CredentialSaver

	streamFn      StreamFunc
	streamEvents  chan api.Event
	streamCancel  context.CancelFunc
	streamStarted bool

	phase   phase
	mode    inputMode
	input   string
	loading bool

	cursor    int
	width     int
	height    int
	status    string
	statusID  int
	detail    api.Item
	detailTop int
	text      string
	textKind  content.Kind
	textReady bool

	openFileFn func(string) error
}

func NewModel(opts Options) Model {
	m := Model{
		transport:      opts.Transport,
		sess:           opts.Session,
		sync:           opts.Sync,
		clip:           opts.Clipboard,
		log:            opts.Log,
		serverURL:      opts.ServerURL,
		navSecret:      opts.NavSecret,
		saveCredential: opts.SaveCredential,
		streamFn:       opts.Stream,
		phase:          phaseAuthenticating,
		openFileFn:     openInBrowser,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.navSecret != "" && m.sess.BeginRedemption(m.navSecret) {
		return redeemCmd(m.transport, m.sess.FeedName(), m.navSecret)
	}
	if m.sess.BeginMetadataFetch() {
		return metadataCmd(m.transport, m.sess.FeedName())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case redemptionResultMsg:
		return m.applyRedemption(msg)
	case metadataResultMsg:
		return m.applyMetadata(msg)
	case pinResultMsg:
		return m.applyPINResult(msg)
	case refreshResultMsg:
		return m.applyRefresh(msg)
	case itemTextMsg:
		if msg.feedName != m.sync.FeedName() {
			return m, nil
		}
		if msg.err != nil {
			return m.notify("Could not load item: " + msg.err.Error())
		}
		if m.phase == phaseDetail && m.detail.Name == msg.itemName {
			m.text = msg.text
			m.textKind = msg.kind
			m.textReady = true
		}
		return m, nil
	case deleteResultMsg:
		if msg.err != nil {
			return m.notify("Delete failed: " + msg.err.Error())
		}
		m.sync.ApplyDelete(msg.feedName, msg.itemName)
		m.cursor = state.ClampCursor(m.cursor, m.sync.Len())
		if m.phase == phaseDetail && m.detail.Name == msg.itemName {
			m.phase = phaseList
		}
		return m.notify("Item deleted")
	case renameResultMsg:
		if msg.err != nil {
			return m.notify("Rename failed: " + msg.err.Error())
		}
		m.sync.ApplyRename(msg.feedName, msg.oldName, msg.newName)
		if m.phase == phaseDetail && m.detail.Name == msg.oldName {
			m.detail.Name = msg.newName
			m.detail.DisplayName = msg.newName
		}
		return m.notify("Item renamed")
	case purgeResultMsg:
		if msg.err != nil {
			return m.notify("Empty feed failed: " + msg.err.Error())
		}
		m.sync.ApplyPurge(msg.feedName)
		m.cursor = 0
		m.phase = phaseList
		return m.notify("Feed emptied")
	case setPinResultMsg:
		if msg.err != nil {
			return m.notify("Set PIN failed: " + msg.err.Error())
		}
		return m.notify("PIN set")
	case pushResultMsg:
		if msg.err != nil {
			return m.notify("Paste failed: " + msg.err.Error())
		}
		m.sync.MarkStale()
		cmd := m.refreshIfNeeded()
		model, notifyCmd := m.notify("Pasted to feed")
		return model, tea.Batch(cmd, notifyCmd)
	case copyDoneMsg:
		return m.notify(msg.status)
	case copyImageResultMsg:
		if msg.err != nil {
			return m.notify(msg.err.Error())
		}
		return m.notify("Copied to clipboard")
	case saveItemResultMsg:
		if msg.err != nil {
			return m.notify("Download failed: " + msg.err.Error())
		}
		return m.notify("Saved to " + msg.path)
	case exportResultMsg:
		if msg.err != nil {
			return m.notify("Preview failed: " + msg.err.Error())
		}
		return m.notify("Opened preview: " + msg.path)
	case streamEventMsg:
		if !msg.ok {
			return m, nil
		}
		m.sync.ApplyEvent(msg.feedName, msg.event)
		m.cursor = state.ClampCursor(m.cursor, m.sync.Len())
		return m, waitForStreamEventCmd(m.sync.FeedName(), m.streamEvents)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case credentialSaveErrorMsg:
		m.log.Warn().Err(msg.err).Msg("could not persist feed credential")
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.phase {
	case phaseAuthenticating, phaseFatal:
		if msg.String() == "q" {
			return m.quit()
		}
		return m, nil
	case phasePin:
		return m.updatePinKey(msg)
	case phaseDetail:
		if m.mode != inputNone {
			return m.updateInputKey(msg)
		}
		return m.updateDetailKey(msg)
	default:
		if m.mode != inputNone {
			return m.updateInputKey(msg)
		}
		return m.updateListKey(msg)
	}
}

func (m Model) updatePinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pin := m.input
		if pin == "" {
			return m, nil
		}
		if !m.sess.BeginPINExchange() {
			return m, nil
		}
		m.input = ""
		m.loading = true
		return m, authenticateCmd(m.transport, m.sess.FeedName(), pin, pinSource)
	case "esc":
		m.input = ""
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if len(msg.Runes) > 0 && msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

func (m Model) updateInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitInput()
	case "esc":
		m.mode = inputNone
		m.input = ""
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.input += msg.String()
		}
		return m, nil
	}
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input
	mode := m.mode
	m.mode = inputNone
	m.input = ""
	if value == "" {
		return m, nil
	}

	feed := m.sync.FeedName()
	switch mode {
	case inputRename:
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		return m, renameCmd(m.transport, feed, item.Name, value)
	case inputCompose:
		return m, pushTextCmd(m.transport, feed, value)
	case inputSetPIN:
		return m, setPinCmd(m.transport, feed, value)
	}
	return m, nil
}

func (m Model) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		m.cursor = state.ClampCursor(m.cursor-1, m.sync.Len())
		return m, nil
	case "down", "j":
		m.cursor = state.ClampCursor(m.cursor+1, m.sync.Len())
		return m, nil
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = state.ClampCursor(m.sync.Len()-1, m.sync.Len())
		return m, nil
	case "pgup", "ctrl+b":
		m.cursor = state.ClampCursor(m.cursor-state.PageStep(m.height, m.status != ""), m.sync.Len())
		return m, nil
	case "pgdown", "ctrl+f":
		m.cursor = state.ClampCursor(m.cursor+state.PageStep(m.height, m.status != ""), m.sync.Len())
		return m, nil
	case "enter":
		return m.openDetail()
	case "r":
		m.sync.MarkStale()
		return m, m.refreshIfNeeded()
	case "y":
		return m.copyCurrent()
	case "s":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		return m, saveItemCmd(m.transport, m.sync.FeedName(), item)
	case "d":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		return m, deleteCmd(m.transport, m.sync.FeedName(), item.Name)
	case "D":
		if m.sync.Len() == 0 {
			return m, nil
		}
		return m, purgeCmd(m.transport, m.sync.FeedName())
	case "R":
		item, ok := m.currentItem()
		if !ok {
			return m, nil
		}
		m.mode = inputRename
		m.input = item.DisplayName
		return m, nil
	case "c":
		m.mode = inputCompose
		m.input = ""
		return m, nil
	case "P":
		m.mode = inputSetPIN
		m.input = ""
		return m, nil
	case "L":
		return m.copyPermalink()
	}
	return m, nil
}

func (m Model) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		m.phase = phaseList
		m.detailTop = 0
		return m, nil
	case "up", "k":
		m.detailTop = state.ScrollTop(m.detailTop-1, m.detailLineCount(), m.detailBodyHeight())
		return m, nil
	case "down", "j":
		m.detailTop = state.ScrollTop(m.detailTop+1, m.detailLineCount(), m.detailBodyHeight())
		return m, nil
	case "y":
		return m.copyCurrent()
	case "R":
		m.mode = inputRename
		m.input = m.detail.DisplayName
		return m, nil
	case "d":
		return m, deleteCmd(m.transport, m.sync.FeedName(), m.detail.Name)
	case "s":
		return m, saveItemCmd(m.transport, m.sync.FeedName(), m.detail)
	case "o":
		if m.detail.Kind != api.TextItem || !m.textReady {
			return m, nil
		}
		fragment := render.Render(m.text, m.textKind)
		return m, exportCmd(m.detail.DisplayName, fragment, m.openFileFn)
	}
	return m, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		return m, nil
	}
	m.phase = phaseDetail
	m.detail = item
	m.detailTop = 0
	m.text = ""
	m.textReady = false
	if item.Kind == api.TextItem {
		return m, itemTextCmd(m.transport, m.sync.FeedName(), item.Name, m.log)
	}
	return m, nil
}

func (m Model) copyCurrent() (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if m.phase == phaseDetail {
		item, ok = m.detail, true
	}
	if !ok {
		return m, nil
	}

	switch item.Kind {
	case api.TextItem:
		if m.phase == phaseDetail && m.textReady {
			text := m.text
			clip := m.clip
			return m, func() tea.Msg {
				clip.CopyText(text)
				return copyDoneMsg{status: "Copied to clipboard"}
			}
		}
		return m, copyItemTextCmd(m.transport, m.clip, m.sync.FeedName(), item.Name, m.log)
	case api.ImageItem:
		return m, copyImageCmd(m.transport, m.clip, m.sync.FeedName(), item.Name)
	default:
		return m.notify("Files cannot be copied, press s to download")
	}
}

func (m Model) copyPermalink() (tea.Model, tea.Cmd) {
	secret := m.sess.Secret()
	if secret == "" {
		return m, nil
	}
	link := m.serverURL + "/" + m.sync.FeedName() + "?secret=" + secret
	clip := m.clip
	return m, func() tea.Msg {
		clip.CopyText(link)
		return copyDoneMsg{status: "Link copied"}
	}
}

func (m Model) currentItem() (api.Item, bool) {
	return m.sync.ItemAt(m.cursor)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.streamCancel != nil {
		m.streamCancel()
	}
	return m, tea.Quit
}

func (m Model) notify(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, clearStatusCmd(m.statusID, 4*time.Second)
}

func (m Model) applyRedemption(msg redemptionResultMsg) (tea.Model, tea.Cmd) {
	m.sess.CompleteRedemption(msg.secret, msg.err)
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("secret redemption failed")
		if m.sess.BeginMetadataFetch() {
			return m, metadataCmd(m.transport, m.sess.FeedName())
		}
		return m, nil
	}
	// Strip the redeemed secret from the navigation target for good.
	m.navSecret = ""
	return m.becomeAuthenticated(nil)
}

func (m Model) applyMetadata(msg metadataResultMsg) (tea.Model, tea.Cmd) {
	if msg.feedName != m.sess.FeedName() {
		return m, nil
	}
	m.sess.ApplyMetadata(msg.feed, msg.err)
	switch m.sess.State() {
	case session.Authenticated:
		return m.becomeAuthenticated(msg.feed.Items)
	case session.PinRequired:
		m.phase = phasePin
		m.input = ""
		return m, nil
	case session.Fatal:
		m.phase = phaseFatal
		return m, nil
	}
	return m, nil
}

func (m Model) applyPINResult(msg pinResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.sess.CompletePINExchange(msg.secret, msg.err)
	if msg.err != nil {
		message := "PIN rejected"
		if !errors.Is(msg.err, api.ErrUnauthorized) {
			message = "PIN exchange failed: " + msg.err.Error()
		}
		return m.notify(message)
	}
	return m.becomeAuthenticated(nil)
}

// becomeAuthenticated runs the shared post-authentication path: install the
// secret on the transport and projection, persist it, load items if they
// did not arrive with the metadata, and start the live stream.
func (m Model) becomeAuthenticated(items []api.Item) (tea.Model, tea.Cmd) {
	secret := m.sess.Secret()
	m.transport.SetSecret(secret)
	m.sync.SetSecret(secret)
	m.phase = phaseList

	cmds := make([]tea.Cmd, 0, 4)
	if m.saveCredential != nil {
		cmds = append(cmds, saveCredentialCmd(m.saveCredential, m.sess.FeedName(), secret, m.sess.PushKey()))
	}

	if items != nil {
		m.sync.ApplyItems(m.sess.FeedName(), items)
		m.cursor = state.ClampCursor(m.cursor, m.sync.Len())
	} else if cmd := m.refreshIfNeeded(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if cmd := m.startStream(secret); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) refreshIfNeeded() tea.Cmd {
	if !m.sync.NeedsRefresh() {
		return nil
	}
	return refreshCmd(m.transport, m.sync.FeedName())
}

func (m *Model) startStream(secret string) tea.Cmd {
	if m.streamFn == nil || m.streamStarted {
		return nil
	}
	m.streamStarted = true
	ctx, cancel := context.WithCancel(context.Background())
	m.streamCancel = cancel
	m.streamEvents = make(chan api.Event, 16)

	feed := m.sync.FeedName()
	streamFn := m.streamFn
	events := m.streamEvents
	runner := func() tea.Msg {
		defer close(events)
		_ = streamFn(ctx, feed, secret, events)
		return nil
	}
	return tea.Batch(runner, waitForStreamEventCmd(feed, events))
}

func redeemCmd(transport Transport, feed, secret string) tea.Cmd {
	return authenticateCmd(transport, feed, secret, secretSource)
}

type credentialSource int

const (
	secretSource credentialSource = iota
	pinSource
)

func authenticateCmd(transport Transport, feed, credential string, source credentialSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		secret, err := transport.Authenticate(ctx, feed, credential)
		if source == pinSource {
			return pinResultMsg{secret: secret, err: err}
		}
		return redemptionResultMsg{secret: secret, err: err}
	}
}

func metadataCmd(transport Transport, feed string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := transport.GetFeed(ctx, feed)
		return metadataResultMsg{feedName: feed, feed: result, err: err}
	}
}

func refreshCmd(transport Transport, feed string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := transport.GetFeed(ctx, feed)
		return refreshResultMsg{feedName: feed, feed: result, err: err}
	}
}

func (m Model) applyRefresh(msg refreshResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.notify("Refresh failed: " + msg.err.Error())
	}
	if !m.sync.ApplyItems(msg.feedName, msg.feed.Items) {
		return m, nil
	}
	m.cursor = state.ClampCursor(m.cursor, m.sync.Len())
	return m, nil
}

func itemTextCmd(transport Transport, feed, item string, log zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, contentType, err := transport.GetItem(ctx, feed, item)
		if err != nil {
			return itemTextMsg{feedName: feed, itemName: item, err: err}
		}
		kind, text := content.Classify(content.FromResponse(data, contentType), log)
		return itemTextMsg{feedName: feed, itemName: item, kind: kind, text: text}
	}
}

func copyItemTextCmd(transport Transport, clip *clipboard.Bridge, feed, item string, log zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, contentType, err := transport.GetItem(ctx, feed, item)
		if err != nil {
			return copyImageResultMsg{err: fmt.Errorf("could not load item: %w", err)}
		}
		_, text := content.Classify(content.FromResponse(data, contentType), log)
		clip.CopyText(text)
		return copyDoneMsg{status: "Copied to clipboard"}
	}
}

func copyImageCmd(transport Transport, clip *clipboard.Bridge, feed, item string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := clip.CopyImage(ctx, func(ctx context.Context) ([]byte, string, error) {
			return transport.GetItem(ctx, feed, item)
		})
		return copyImageResultMsg{err: err}
	}
}

func saveItemCmd(transport Transport, feed string, item api.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, _, err := transport.GetItem(ctx, feed, item.Name)
		if err != nil {
			return saveItemResultMsg{err: err}
		}
		path := item.DisplayName
		if path == "" {
			path = item.Name
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return saveItemResultMsg{err: fmt.Errorf("write %s: %w", path, err)}
		}
		return saveItemResultMsg{path: path}
	}
}

func deleteCmd(transport Transport, feed, item string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := transport.DeleteItem(ctx, feed, item)
		return deleteResultMsg{feedName: feed, itemName: item, err: err}
	}
}

func renameCmd(transport Transport, feed, item, newName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := transport.RenameItem(ctx, feed, item, newName)
		return renameResultMsg{feedName: feed, oldName: item, newName: newName, err: err}
	}
}

func purgeCmd(transport Transport, feed string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := transport.EmptyFeed(ctx, feed)
		return purgeResultMsg{feedName: feed, err: err}
	}
}

func setPinCmd(transport Transport, feed, pin string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return setPinResultMsg{err: transport.SetPIN(ctx, feed, pin)}
	}
}

func pushTextCmd(transport Transport, feed, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return pushResultMsg{feedName: feed, err: transport.PushText(ctx, feed, text)}
	}
}

func saveCredentialCmd(save CredentialSaver, feed, secret, pushKey string) tea.Cmd {
	return func() tea.Msg {
		if err := save(feed, secret, pushKey); err != nil {
			return credentialSaveErrorMsg{err: err}
		}
		return nil
	}
}

func exportCmd(title, fragment string, openFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		f, err := os.CreateTemp("", "feedpad-*.html")
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("create preview file: %w", err)}
		}
		page := render.Page(title, fragment)
		if _, err := f.WriteString(page); err != nil {
			f.Close()
			os.Remove(f.Name())
			return exportResultMsg{err: fmt.Errorf("write preview file: %w", err)}
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return exportResultMsg{err: fmt.Errorf("close preview file: %w", err)}
		}
		if openFn != nil {
			if err := openFn(f.Name()); err != nil {
				return exportResultMsg{err: fmt.Errorf("open preview: %w", err)}
			}
		}
		return exportResultMsg{path: f.Name()}
	}
}

func waitForStreamEventCmd(feed string, events <-chan api.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		return streamEventMsg{feedName: feed, event: event, ok: ok}
	}
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func openInBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Run()
}
