// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
	"github.com/taskdeck/taskdeck/lib/transcribe"
	"github.com/taskdeck/taskdeck/lib/tui"
)

// Options configures a Model.
type Options struct {
	// Runner executes effects. Required.
	Runner *tasksync.Runner

	// Mode is the initial layout.
	Mode tasksync.Mode

	// Transcriber records speech for the voice surface. Nil means
	// transcripts are typed.
	Transcriber transcribe.Transcriber

	// Context bounds every effect. Defaults to context.Background.
	Context context.Context

	Clock  clock.Clock
	Logger *slog.Logger
}

// eventMsg delivers the completion of an effect.
type eventMsg struct {
	event tasksync.Event
}

// transcriptMsg delivers the result of a transcription started for
// capture number seq.
type transcriptMsg struct {
	seq        uint64
	transcript string
	err        error
}

type heatTickMsg struct{}

// followTarget asks the cursor to land on a task once it is visible,
// optionally only once it has reached status.
type followTarget struct {
	id     int64
	status task.Status
}

// Model is the bubbletea model for the taskdeck terminal UI.
type Model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	runner      *tasksync.Runner
	transcriber transcribe.Transcriber
	clock       clock.Clock
	logger      *slog.Logger
	theme       tui.Theme
	keys        KeyMap
	help        help.Model

	state tasksync.State

	// initial holds the effects of the first refresh until Init runs
	// them.
	initial []tasksync.Effect

	width  int
	height int

	// Board cursor: selected column and the row within each column.
	column int
	rows   [3]int

	// List cursor and scroll offset.
	listRow    int
	listOffset int

	// First card drawn in each board column.
	boardOffsets [3]int

	follow followTarget

	searching bool
	search    textinput.Model

	form taskForm

	capture       textinput.Model
	captureSeq    uint64
	listening     bool
	stopListening context.CancelFunc

	detail viewport.Model

	heat        *tui.HeatTracker
	heatTicking bool

	logLine  string
	logLevel slog.Level
	logSeq   uint64
}

// New creates a model and requests the initial fetch.
func New(options Options) Model {
	parent := options.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	now := options.Clock
	if now == nil {
		now = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or description"

	state, effects := tasksync.Reduce(tasksync.New(options.Mode), tasksync.RefreshRequested{})

	return Model{
		ctx:         ctx,
		cancel:      cancel,
		runner:      options.Runner,
		transcriber: options.Transcriber,
		clock:       now,
		logger:      logger,
		theme:       tui.DefaultTheme,
		keys:        DefaultKeyMap,
		help:        help.New(),
		state:       state,
		initial:     effects,
		search:      search,
		heat:        tui.NewHeatTracker(),
	}
}

// State returns the current application state.
func (model Model) State() tasksync.State { return model.state }

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return model.runEffects(model.initial)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		model.search.Width = max(message.Width-4, 10)
		model.syncPanes()
		return model, nil

	case eventMsg:
		return model.dispatch(message.event)

	case transcriptMsg:
		return model.handleTranscript(message)

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			return model, scheduleHeatTick()
		}
		model.heatTicking = false
		return model, nil

	case logRecordMsg:
		model.logSeq++
		model.logLine = message.Summary
		model.logLevel = message.Level
		seq := model.logSeq
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Seq: seq}
		})

	case logRecordFadeMsg:
		if message.Seq == model.logSeq {
			model.logLine = ""
		}
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

// dispatch reduces events in order and schedules the effects they
// produce.
func (model Model) dispatch(events ...tasksync.Event) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, event := range events {
		previous := model.state
		var effects []tasksync.Effect
		model.state, effects = tasksync.Reduce(model.state, event)
		if _, ok := event.(tasksync.RefreshCompleted); ok {
			model.logRefresh(previous)
		}
		cmds = append(cmds, model.runEffects(effects), model.afterTransition(previous, event))
	}
	model.clampCursor()
	model.syncPanes()
	return model, tea.Batch(cmds...)
}

func (model Model) logRefresh(previous tasksync.State) {
	if err := model.state.FetchError(); err != nil {
		model.logger.Debug("refresh failed, keeping previous tasks", "error", err)
		return
	}
	if dropped := model.state.DroppedDuplicates(); dropped > 0 {
		model.logger.Warn("task list contained duplicate ids", "dropped", dropped)
	}
	if model.state.Digest() != previous.Digest() {
		model.logger.Debug("tasks changed",
			"tasks", len(model.state.Tasks()),
			"digest", model.state.Digest().Short(),
		)
	}
}

func (model Model) runEffects(effects []tasksync.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		runner, ctx := model.runner, model.ctx
		cmds = append(cmds, func() tea.Msg {
			return eventMsg{event: runner.Run(ctx, effect)}
		})
	}
	return tea.Batch(cmds...)
}

// afterTransition keeps widget state in step with the reducer: it
// fills forms when they open, starts and stops audio capture, and
// highlights tasks that changed.
func (model *Model) afterTransition(previous tasksync.State, event tasksync.Event) tea.Cmd {
	before, after := previous.View(), model.state.View()

	if after.Modal == tasksync.ModalTaskForm && before.Modal != tasksync.ModalTaskForm {
		draft := tasksync.Draft{}
		if existing, ok := model.state.Task(after.EditingID); ok {
			draft = tasksync.DraftFromTask(existing)
		}
		model.form = newTaskForm(draft, model.modalWidth())
	}

	if previous.Phase() == tasksync.PhaseParsing && model.state.Phase() == tasksync.PhaseReviewing {
		if session, ok := model.state.Voice(); ok {
			model.form = newTaskForm(session.Draft, model.modalWidth())
		}
	}

	if previous.Phase() == tasksync.PhaseCapturing && model.state.Phase() != tasksync.PhaseCapturing {
		model.endCapture()
	}

	var cmd tea.Cmd
	if after.Modal == tasksync.ModalVoiceCapture && before.Modal != tasksync.ModalVoiceCapture {
		cmd = model.beginCapture()
	}

	if completed, ok := event.(tasksync.MutationCompleted); ok && completed.Err == nil {
		cmd = tea.Batch(cmd, model.markChanged(completed))
	}
	return cmd
}

func (model *Model) markChanged(completed tasksync.MutationCompleted) tea.Cmd {
	if completed.Mutation.Kind == tasksync.MutationDelete {
		model.heat.Ignite(completed.Mutation.ID, tui.HeatRemove, model.clock.Now())
		return nil
	}
	model.heat.Ignite(completed.Task.ID, tui.HeatPut, model.clock.Now())
	if completed.Mutation.Kind == tasksync.MutationCreate {
		model.follow = followTarget{id: completed.Task.ID}
	}
	if model.heatTicking {
		return nil
	}
	model.heatTicking = true
	return scheduleHeatTick()
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg { return heatTickMsg{} })
}

// beginCapture resets the capture input and, when a transcriber is
// configured, starts listening.
func (model *Model) beginCapture() tea.Cmd {
	model.captureSeq++
	model.capture = textinput.New()
	model.capture.Placeholder = "e.g. remind me to call the dentist tomorrow, it's urgent"
	model.capture.Width = max(model.modalWidth()-6, 20)
	focus := model.capture.Focus()
	if model.transcriber == nil {
		return focus
	}

	ctx, cancel := context.WithCancel(model.ctx)
	model.stopListening = cancel
	model.listening = true
	seq, transcriber := model.captureSeq, model.transcriber
	return tea.Batch(focus, func() tea.Msg {
		transcript, err := transcriber.Transcribe(ctx)
		return transcriptMsg{seq: seq, transcript: transcript, err: err}
	})
}

func (model *Model) endCapture() {
	if model.stopListening != nil {
		model.stopListening()
		model.stopListening = nil
	}
	model.listening = false
}

func (model Model) handleTranscript(message transcriptMsg) (tea.Model, tea.Cmd) {
	if message.seq != model.captureSeq || model.state.Phase() != tasksync.PhaseCapturing {
		return model, nil
	}
	model.endCapture()
	if message.err != nil {
		model.logger.Warn("transcription failed, type the task instead", "error", message.err)
		return model, nil
	}
	return model.dispatch(tasksync.TranscriptReady{SessionID: uuid.New(), Transcript: message.transcript})
}

// quit seals the state and stops everything in flight.
func (model Model) quit() (tea.Model, tea.Cmd) {
	model.state, _ = tasksync.Reduce(model.state, tasksync.Shutdown{})
	model.endCapture()
	model.cancel()
	return model, tea.Quit
}
