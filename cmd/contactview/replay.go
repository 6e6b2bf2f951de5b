package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/contactview/formats"
	"github.com/arthur-debert/contactview/types"
	"github.com/arthur-debert/contactview/view"
)

// replayScript is a sequence of steps run against one view.
//
//	steps:
//	  - pattern: jo
//	  - type: favorites
//	    require: phone,email
//	  - delete: [3]
//	  - update:
//	      - {id: 2, first_name: Zed, favorite: true}
type replayScript struct {
	Steps []replayStep `yaml:"steps"`
}

// replayStep applies store mutations first, then any filter field it sets.
// Unset filter fields keep their current value.
type replayStep struct {
	Type          *types.FilterType       `yaml:"type"`
	Pattern       *string                 `yaml:"pattern"`
	Require       *types.RequiredProperty `yaml:"require"`
	FirstLetter   *bool                   `yaml:"first_letter"`
	LastNameFirst *bool                   `yaml:"last_name_first"`
	Add           []types.Contact         `yaml:"add"`
	Update        []types.Contact         `yaml:"update"`
	Delete        []types.RecordID        `yaml:"delete"`
}

func loadReplayScript(path string) (*replayScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseReplayScript(bytes.NewReader(data))
}

func parseReplayScript(r io.Reader) (*replayScript, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var script replayScript
	if err := decoder.Decode(&script); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("script has no steps")
	}
	return &script, nil
}

func (st replayStep) apply(sess *session) error {
	if len(st.Add) > 0 {
		sess.store.Add(st.Add...)
	}
	for _, c := range st.Update {
		if err := sess.store.Update(c); err != nil {
			return err
		}
	}
	if len(st.Delete) > 0 {
		sess.store.Delete(st.Delete...)
	}
	if st.LastNameFirst != nil {
		order := types.FirstNameFirst
		if *st.LastNameFirst {
			order = types.LastNameFirst
		}
		sess.store.SetDisplayLabelOrder(order)
	}

	state := sess.view.FilterState()
	if st.Type != nil {
		state.Type = *st.Type
	}
	if st.Pattern != nil {
		state.Pattern = *st.Pattern
	}
	if st.Require != nil {
		state.RequiredProperty = *st.Require
	}
	if st.FirstLetter != nil {
		state.SearchByFirstNameCharacter = *st.FirstLetter
	}
	sess.view.SetFilterState(state)
	return nil
}

// replay runs every step, checking a mirror of the view after each one.
// The steps that ran are returned even when one of them fails.
func replay(sess *session, script *replayScript) ([]formats.Step, error) {
	mirror := view.NewMirror(sess.view)
	defer mirror.Close()

	var pending []types.Event
	handle := sess.view.Subscribe(func(e types.Event) {
		pending = append(pending, e)
	})
	defer sess.view.Unsubscribe(handle)

	steps := make([]formats.Step, 0, len(script.Steps))
	for i, st := range script.Steps {
		pending = nil
		if err := st.apply(sess); err != nil {
			return steps, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, formats.Step{
			Step:   i + 1,
			State:  sess.view.FilterState(),
			Events: pending,
			Rows:   sess.view.RowCount(),
		})
		if err := mirror.Verify(); err != nil {
			return steps, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return steps, nil
}

func (cli *CLI) newReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a script of filter and store changes, printing every event",
		Long: `replay runs the steps of a YAML script against a view and prints the
events each step emitted. After every step the events are applied to a
mirrored row list, which must equal the view; the command fails otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.format()
			if err != nil {
				return err
			}
			script, err := loadReplayScript(args[0])
			if err != nil {
				return err
			}

			sess, err := cli.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			steps, replayErr := replay(sess, script)
			cli.logger.Info("replay finished", "script", args[0], "steps", len(steps), "error", replayErr)
			if err := format.Steps(cmd.OutOrStdout(), steps); err != nil {
				return err
			}
			return replayErr
		},
	}
}
