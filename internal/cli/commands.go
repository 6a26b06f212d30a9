package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"

	"github.com/oskarlind/dayqueue/internal/constants"
	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/suggest"
	"github.com/oskarlind/dayqueue/internal/taskmachine"
	"github.com/oskarlind/dayqueue/internal/timeutil"
	"github.com/oskarlind/dayqueue/internal/validation"
)

// Context is the collaborator set every command Run method receives,
// mirroring the teacher's cli.Context that carries Store and Scheduler.
type Context struct {
	Machine   *taskmachine.Machine
	Confirmer Confirmer
	Out       io.Writer
}

// CLI is the kong root command. One nested struct per task-state-machine
// verb, following the teacher's flat "Cmd" naming inside a single
// top-level struct (root.go's TaskCmd/PlanCmd layout, generalized to this
// domain's verb set).
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Debug   bool             `help:"Enable debug logging." name:"debug"`
	Config   string          `help:"Path to the task database." env:"DAYQUEUE_CONFIG" default:"~/.config/dayqueue/dayqueue.db"`
	Couch    string          `help:"Optional CouchDB URL to replicate writes to." env:"COUCHDB_URL"`
	Timezone string          `help:"IANA timezone name \"today\" and start times are relative to." env:"DAYQUEUE_TIMEZONE" default:"Local"`

	Add             AddCmd             `cmd:"" help:"Add a task."`
	Update          UpdateCmd          `cmd:"" help:"Update a task by index."`
	Complete        CompleteCmd        `cmd:"" help:"Mark a task completed."`
	Delete          DeleteCmd          `cmd:"" help:"Delete a task by index (asks for confirmation)."`
	DeleteAll       DeleteAllCmd       `cmd:"" name:"delete-all" help:"Delete every task."`
	DeleteScheduled DeleteScheduledCmd `cmd:"" name:"delete-scheduled" help:"Delete every scheduled task."`
	DeleteCompleted DeleteCompletedCmd `cmd:"" name:"delete-completed" help:"Delete every completed task."`
	Unschedule      UnscheduleCmd      `cmd:"" help:"Convert a scheduled task to unscheduled."`
	Lock            LockCmd            `cmd:"" help:"Toggle a scheduled task's lock."`
	Toggle          ToggleCmd          `cmd:"" help:"Toggle completion of an unscheduled task."`
	Edit            EditCmd            `cmd:"" help:"Mark a task as being edited (transient, not persisted)."`
	CancelEdit      CancelEditCmd      `cmd:"" name:"cancel-edit" help:"Clear a task's edit flag."`
	Suggest         SuggestCmd         `cmd:"" help:"Suggest a start time for a new task."`
	List            ListCmd            `cmd:"" help:"List today's tasks."`
	Keyring         KeyringCmd         `cmd:"" help:"Manage the stored database connection string."`
}

// resolveByID maps a task id to its current position in Store's sequence,
// the index the index-addressed Machine methods need.
func resolveByID(ctx *Context, id string) (int, error) {
	idx := ctx.Machine.Store.IndexOf(id)
	if idx < 0 {
		return 0, fmt.Errorf("no task with id %q", id)
	}
	return idx, nil
}

type EditCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *EditCmd) Run(ctx *Context) error {
	idx, err := resolveByID(ctx, c.ID)
	if err != nil {
		return err
	}
	return report(ctx, ctx.Machine.Edit(idx))
}

type CancelEditCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *CancelEditCmd) Run(ctx *Context) error {
	idx, err := resolveByID(ctx, c.ID)
	if err != nil {
		return err
	}
	return report(ctx, ctx.Machine.CancelEdit(idx))
}

func report(ctx *Context, r taskmachine.Result) error {
	switch r.Kind {
	case taskmachine.KindSuccess:
		if r.Message != "" {
			fmt.Fprintln(ctx.Out, r.Message)
		}
		return nil
	case taskmachine.KindFailure:
		return fmt.Errorf("%s", r.Reason)
	default:
		return fmt.Errorf("unresolved confirmation: %s", r.Confirm)
	}
}

// AddCmd implements the add verb. An empty StartTime means unscheduled.
type AddCmd struct {
	Description string `arg:"" help:"Task description."`
	StartTime   string `help:"Scheduled start time, HH:MM. Omit for an unscheduled task."`
	Duration    int    `help:"Duration in minutes (scheduled tasks)."`
	Priority    string `help:"Priority: high, medium, or low (unscheduled tasks)." default:"medium"`
	EstDuration int    `help:"Estimated duration in minutes (unscheduled tasks, 0 for unset)."`
	Date        string `help:"Date the start time is relative to, YYYY-MM-DD." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	in := validation.Input{Description: c.Description}
	anchor := ctx.Machine.Clock.Now()
	if c.Date != "" {
		d, err := time.ParseInLocation(constants.DateFormat, c.Date, anchor.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
		anchor = d
	}

	if c.StartTime != "" {
		in.Kind = models.KindScheduled
		in.StartTime = c.StartTime
		in.DurationMin = c.Duration
	} else {
		in.Kind = models.KindUnscheduled
		in.Priority = models.Priority(c.Priority)
		if c.EstDuration > 0 {
			d := c.EstDuration
			in.EstDuration = &d
		}
	}

	r := ctx.Machine.Add(in, anchor)
	r = Resolve(ctx.Machine, r, ctx.Confirmer)
	return report(ctx, r)
}

// UpdateCmd implements the update verb against the task at Index.
type UpdateCmd struct {
	Index       int    `arg:"" help:"Task position in the stored task sequence, starting at 0."`
	Description string `help:"New description."`
	StartTime   string `help:"New start time, HH:MM."`
	Duration    int    `help:"New duration in minutes."`
	Priority    string `help:"New priority." default:"medium"`
	EstDuration int    `help:"New estimated duration in minutes, 0 for unset."`
}

func (c *UpdateCmd) Run(ctx *Context) error {
	in := validation.Input{Description: c.Description}
	anchor := ctx.Machine.Clock.Now()

	if c.StartTime != "" {
		in.Kind = models.KindScheduled
		in.StartTime = c.StartTime
		in.DurationMin = c.Duration
	} else {
		in.Kind = models.KindUnscheduled
		in.Priority = models.Priority(c.Priority)
		if c.EstDuration > 0 {
			d := c.EstDuration
			in.EstDuration = &d
		}
	}

	r := ctx.Machine.Update(c.Index, in, anchor)
	r = Resolve(ctx.Machine, r, ctx.Confirmer)
	return report(ctx, r)
}

// CompleteCmd marks a task completed at its scheduled end, or at the Now
// time when it is set.
type CompleteCmd struct {
	Index int    `arg:"" help:"Task position in the stored task sequence, starting at 0."`
	Now   string `help:"Completion time override, HH:MM. Defaults to the scheduled end."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	var currentTime *time.Time
	if c.Now != "" {
		t, err := timeutil.ToInstant(c.Now, ctx.Machine.Clock.Now())
		if err != nil {
			return err
		}
		currentTime = &t
	}

	r := ctx.Machine.Complete(c.Index, currentTime)
	r = Resolve(ctx.Machine, r, ctx.Confirmer)
	return report(ctx, r)
}

// DeleteCmd implements the two-phase delete: the first Delete call raises a
// NeedsConfirm and flips the transient confirmingDelete flag; once the
// prompt is answered yes, or straight away with --yes, a second call
// removes the task.
type DeleteCmd struct {
	Index int  `arg:"" help:"Task position in the stored task sequence, starting at 0."`
	Yes   bool `help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	r := ctx.Machine.Delete(c.Index, false)
	if r.Kind == taskmachine.KindNeedsConfirm {
		confirmed := c.Yes
		if !confirmed {
			confirmed = ctx.Confirmer.Ask(describeConfirm(r))
		}
		if !confirmed {
			return nil
		}
		r = ctx.Machine.Delete(c.Index, true)
	}
	return report(ctx, r)
}

type DeleteAllCmd struct{}

func (c *DeleteAllCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.DeleteAll())
}

type DeleteScheduledCmd struct{}

func (c *DeleteScheduledCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.DeleteAllScheduled())
}

type DeleteCompletedCmd struct{}

func (c *DeleteCompletedCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.DeleteCompleted())
}

type UnscheduleCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *UnscheduleCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.Unschedule(c.ID))
}

type LockCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *LockCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.ToggleLock(c.ID))
}

type ToggleCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	return report(ctx, ctx.Machine.ToggleCompleteUnscheduled(c.ID))
}

type SuggestCmd struct{}

func (c *SuggestCmd) Run(ctx *Context) error {
	now := ctx.Machine.Clock.Now()
	fmt.Fprintln(ctx.Out, suggest.StartTime(now, ctx.Machine.Store.GetState()))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	for i, t := range ctx.Machine.Store.SortedScheduled() {
		fmt.Fprintf(ctx.Out, "%d. [%s-%s] %s%s\n", i, timeutil.ExtractTime(t.StartDateTime), timeutil.ExtractTime(t.EndDateTime), t.Description, lockSuffix(t))
	}
	for i, t := range ctx.Machine.Store.SortedUnscheduled() {
		fmt.Fprintf(ctx.Out, "%d. (%s) %s\n", i, t.Priority, t.Description)
	}
	return nil
}

func lockSuffix(t *models.Task) string {
	if t.Locked {
		return " [locked]"
	}
	return ""
}
