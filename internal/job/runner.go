package job

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediakit/internal/logging"
	"mediakit/internal/services"
)

const defaultFailureLabel = "Error"

// Result records how a job ended.
type Result struct {
	JobID    string
	Command  string
	State    State
	Outputs  []Output
	Err      error
	Class    services.Class
	Duration time.Duration
}

// Succeeded reports whether every output was delivered.
func (r Result) Succeeded() bool {
	return r.State == StateDone
}

// Runner executes jobs against a command registry.
type Runner struct {
	registry *Registry
	workRoot string
	agent    string
	logger   *slog.Logger
	newID    func() string
}

// NewRunner constructs a Runner that creates workspaces under workRoot and
// credits agent in upload captions.
func NewRunner(registry *Registry, workRoot, agent string, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		workRoot: workRoot,
		agent:    agent,
		logger:   logging.NewComponentLogger(logger, "runner"),
		newID:    uuid.NewString,
	}
}

// Registry returns the commands the runner dispatches to.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// execution carries the mutable state of one Run call.
type execution struct {
	id     string
	runner *Runner
	conv   Conversation
	req    Request
	cmd    Command
	ctx    context.Context
	logger *slog.Logger
	state  State
}

func (e *execution) enter(next State) {
	if !CanTransition(e.state, next) {
		e.logger.Warn("unexpected job state transition",
			logging.String("from", e.state.String()),
			logging.String("to", next.String()),
			logging.String(logging.FieldEventType, "job_state_unexpected"),
		)
	}
	e.state = next
	e.ctx = services.WithStage(e.ctx, next.String())
	e.logger = logging.WithContext(e.ctx, e.runner.logger)
	e.logger.Debug("job state changed", logging.String(logging.FieldEventType, "job_state"))
}

// Run executes req to completion. It never returns an error: failures are
// replied to the requester and recorded in the Result.
func (r *Runner) Run(ctx context.Context, conv Conversation, req Request) Result {
	started := time.Now()
	id := r.newID()
	ctx = services.WithJobID(ctx, id)
	ctx = services.WithCommand(ctx, strings.ToLower(req.Command))
	ctx = services.WithRequester(ctx, req.Requester)
	ctx = services.WithStage(ctx, StateValidating.String())

	exec := &execution{
		id:     id,
		runner: r,
		conv:   conv,
		req:    req,
		ctx:    ctx,
		logger: logging.WithContext(ctx, r.logger),
		state:  StateValidating,
	}
	exec.logger.Info("job started",
		logging.String(logging.FieldEventType, "job_start"),
		logging.Int("arg_count", len(req.Args)),
		logging.Bool("has_attachment", req.Attachment != nil),
	)

	result := Result{JobID: id, Command: req.Command}
	outputs, labels, err := exec.run()
	result.Outputs = outputs
	result.Err = err
	result.Class = services.Classify(err)
	result.Duration = time.Since(started)

	if err == nil {
		exec.enter(StateDone)
		result.State = StateDone
		exec.logger.Info("job completed",
			logging.String(logging.FieldEventType, "job_complete"),
			logging.Int("output_count", len(outputs)),
			logging.Duration("duration", result.Duration),
		)
		return result
	}

	validation := exec.state == StateValidating
	if exec.state != StateCleaningUp {
		exec.enter(StateCleaningUp)
	}
	exec.enter(StateFailed)
	result.State = StateFailed
	reply := failureReply(labels, err, validation)
	logFailure(exec.logger, result, reply)
	if conv != nil && reply != "" {
		if replyErr := conv.Reply(exec.ctx, reply); replyErr != nil {
			logging.WarnWithContext(exec.logger, "failed to send error reply", "job_reply_failed",
				logging.Error(replyErr),
				logging.String(logging.FieldErrorHint, "check chat connectivity"),
				logging.String(logging.FieldImpact, "requester was not told about the failure"),
			)
		}
	}
	return result
}

// run drives the job through its states. Everything acquired after
// validation is released before run returns.
func (e *execution) run() (outputs []Output, labels Labels, err error) {
	cmd, ok := e.runner.registry.Lookup(e.req.Command)
	if !ok {
		return nil, labels, services.Reject(services.ErrArgumentInvalid, "Unknown command: "+e.req.Command)
	}
	e.cmd = cmd
	labels = cmd.Labels

	att, err := Resolve(cmd, e.req.Attachment)
	if err != nil {
		return nil, labels, err
	}
	if cmd.Parse == nil {
		return nil, labels, services.Wrap(services.ErrConfiguration, "validate", "parse", "Command has no parser", nil)
	}
	transform, err := cmd.Parse(e.req.Args, att)
	if err != nil {
		if !errors.Is(err, services.ErrInputRejected) && !errors.Is(err, services.ErrArgumentInvalid) {
			err = services.Wrap(services.ErrArgumentInvalid, "validate", "parse arguments", "", err)
		}
		return nil, labels, err
	}
	if labeler, ok := transform.(Labeler); ok {
		labels = mergeLabels(labels, labeler.Labels())
	}

	if labels.Progress != "" && e.conv != nil {
		done, perr := e.conv.Progress(e.ctx, labels.Progress)
		if perr != nil {
			e.logger.Debug("progress message not sent", logging.Error(perr))
		} else if done != nil {
			defer done()
		}
	}

	e.enter(StateAcquiring)
	workspace, err := NewWorkspace(e.runner.workRoot, e.id)
	if err != nil {
		e.enter(StateCleaningUp)
		return nil, labels, services.Wrap(services.ErrTransform, "acquire", "create workspace", "Failed to prepare a working directory", err)
	}
	defer func() {
		if e.state != StateCleaningUp {
			e.enter(StateCleaningUp)
		}
		if rerr := workspace.Release(); rerr != nil {
			logging.WarnWithContext(e.logger, "workspace cleanup incomplete", "workspace_cleanup_failed",
				logging.Error(rerr),
				logging.String("workspace", workspace.Dir()),
				logging.String(logging.FieldErrorHint, "remove the directory manually or restart the bot to sweep it"),
				logging.String(logging.FieldImpact, "temporary files remain on disk"),
			)
			return
		}
		e.logger.Debug("workspace released", logging.String("workspace", workspace.Dir()))
	}()

	env := Env{
		Attachment: att,
		Workspace:  workspace,
		Agent:      e.runner.agent,
		Logger:     e.logger,
	}
	if cmd.NeedsAttachment() {
		env.Input = workspace.Path("input." + att.Ext())
		if err := e.conv.Download(e.ctx, att, env.Input); err != nil {
			return nil, labels, services.Wrap(services.ErrTransform, "acquire", "download", "Failed to download the attachment", err)
		}
	}

	e.enter(StateTransforming)
	env.Logger = e.logger
	produced, err := transform.Run(e.ctx, env)
	for _, out := range produced {
		workspace.Track(out.Path)
	}
	if err != nil {
		return nil, labels, err
	}

	e.enter(StateDelivering)
	delivered := make([]Output, 0, len(produced))
	for idx, out := range produced {
		if err := e.conv.Upload(e.ctx, out); err != nil {
			return delivered, labels, services.Wrap(services.ErrDelivery, "deliver", "upload",
				"Failed to upload the result", err)
		}
		delivered = append(delivered, out)
		e.logger.Debug("output delivered",
			logging.Int("index", idx+1),
			logging.String("kind", string(out.Kind)),
		)
	}
	return delivered, labels, nil
}

func mergeLabels(base, override Labels) Labels {
	if override.Progress != "" {
		base.Progress = override.Progress
	}
	if override.Failure != "" {
		base.Failure = override.Failure
	}
	return base
}

// failureReply renders the text sent to the requester. Failures raised
// before anything was acquired are sent as-is; later failures are prefixed
// with the command's failure label.
func failureReply(labels Labels, err error, validation bool) string {
	message := services.UserMessage(err)
	if validation {
		return message
	}
	prefix := labels.Failure
	if prefix == "" {
		prefix = defaultFailureLabel
	}
	if message == "" {
		return prefix
	}
	return prefix + ": " + message
}

func logFailure(logger *slog.Logger, result Result, reply string) {
	attrs := []logging.Attr{
		logging.String("failure_class", string(result.Class)),
		logging.String("reply", reply),
		logging.Int("delivered", len(result.Outputs)),
		logging.Duration("duration", result.Duration),
		logging.Error(result.Err),
	}
	switch result.Class {
	case services.ClassInputRejected, services.ClassArgumentInvalid:
		logger.Info("job rejected", logging.Args(append(attrs, logging.String(logging.FieldEventType, "job_rejected"))...)...)
	default:
		logging.ErrorWithContext(logger, "job failed", "job_failure",
			append(attrs, logging.String(logging.FieldErrorHint, "see the error for the failing tool or transport"))...)
	}
}
