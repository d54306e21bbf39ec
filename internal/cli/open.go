package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadtower/pkg/controller"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
	"github.com/matzehuels/roadtower/pkg/render/sink"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

// userIDArg returns the user id from args, prompting for it when args is
// empty and stdin is a terminal.
func userIDArg(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return promptUserID(ctx)
	}
	return "", errors.New(errors.ErrCodeMissingInput, "please enter a user ID")
}

// =============================================================================
// open
// =============================================================================

type openOpts struct {
	render   renderOpts
	noRender bool
	summary  bool
}

// openCommand runs the whole flow: check, fetch or generate, hand off and
// render.
func (c *CLI) openCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := openOpts{summary: true}

	cmd := &cobra.Command{
		Use:   "open [user-id]",
		Short: "Fetch or generate the roadmap of a user and render it",
		Long: `Fetch or generate the roadmap of a user and render it.

If the service already stores a roadmap for the user it is fetched right away;
otherwise a new one is generated, which can take a while. The payload is put
in the handoff slot and then rendered. With --no-render it is left in the slot
for a later "roadtower render".

Without a user id an interactive prompt asks for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.render.parse(vizTypesStr, formatsStr); err != nil {
				return err
			}
			userID, err := userIDArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			return c.runOpen(cmd.Context(), userID, &opts)
		},
	}

	opts.render.addFlags(cmd, &vizTypesStr, &formatsStr)
	cmd.Flags().BoolVar(&opts.noRender, "no-render", false, "leave the payload in the handoff slot")
	cmd.Flags().BoolVar(&opts.summary, "summary", opts.summary, "print a per-phase summary table")
	return cmd
}

func (c *CLI) runOpen(ctx context.Context, userID string, opts *openOpts) error {
	ctrl, closeSlot, err := c.newController(ctx)
	if err != nil {
		return err
	}
	defer closeSlot()

	if err := handOff(ctx, ctrl, userID); err != nil {
		return err
	}
	if opts.noRender {
		if c.Config.Handoff.Backend == handoff.BackendMemory {
			printWarning("The memory handoff slot does not outlive this process; use the file or redis backend")
			return nil
		}
		printNextStep("Render it with", appName+" render")
		return nil
	}

	doc, err := ctrl.Take(ctx)
	if err != nil {
		return shown(err)
	}
	if opts.summary {
		printSummary(doc)
	}

	paths, err := c.renderAll(ctx, ctrl, doc, basePath(opts.render.output, userID+"-roadmap"), &opts.render)
	for _, p := range paths {
		printFile(p)
	}
	return err
}

// handOff runs the entry and loading steps, leaving the payload in the
// controller's slot.
func handOff(ctx context.Context, ctrl *controller.Controller, userID string) error {
	sp := newSpinner(ctx, fmt.Sprintf("Checking roadmap for %s", userID)).Start()

	nav, err := ctrl.Submit(ctx, userID)
	if err == nil && nav.View == controller.ViewLoading {
		sp.Update(fmt.Sprintf("Generating roadmap for %s", userID))
		nav, err = ctrl.Generate(ctx, userID)
	}
	if err != nil {
		sp.StopWithError(sink.ErrorMessage(err))
		return shownError{err}
	}
	sp.StopWithSuccess(fmt.Sprintf("Roadmap for %s ready", userID))
	loggerFromContext(ctx).Debug("Navigation", "view", nav.View, "path", nav.Path())
	return nil
}

// =============================================================================
// check
// =============================================================================

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [user-id]",
		Short: "Check whether the service stores a roadmap for a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := userIDArg(ctx, args)
			if err != nil {
				return err
			}
			cl, err := c.newClient()
			if err != nil {
				return err
			}

			exists, err := controller.New(cl, nil).CheckExists(ctx, userID)
			if err != nil {
				return err
			}
			if exists {
				printSuccess("Roadmap for %s exists", userID)
				return nil
			}
			printInfo("No roadmap for %s yet", userID)
			printNextStep("Generate one with", appName+" open "+userID)
			return nil
		},
	}
}

// =============================================================================
// fetch
// =============================================================================

type fetchOpts struct {
	output string
	stored bool
	store  bool
}

// fetchCommand downloads the raw payload without rendering it.
func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch [user-id]",
		Short: "Download the roadmap payload of a user",
		Long: `Download the roadmap payload of a user.

By default the generate endpoint is used, which returns the stored roadmap or
creates one. With --stored only an already stored roadmap is fetched. The
payload is written to stdout, to --output, or into the handoff slot with
--store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userIDArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), cmd.OutOrStdout(), userID, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the payload to a file")
	cmd.Flags().BoolVar(&opts.stored, "stored", false, "only fetch an already stored roadmap")
	cmd.Flags().BoolVar(&opts.store, "store", false, "put the payload in the handoff slot")
	return cmd
}

// runFetch stores, saves or prints the payload. Without --store or -o the raw
// payload goes to out.
func (c *CLI) runFetch(ctx context.Context, out io.Writer, userID string, opts *fetchOpts) error {
	logger := loggerFromContext(ctx)
	if err := errors.ValidateUserID(userID); err != nil {
		return err
	}
	cl, err := c.newClient()
	if err != nil {
		return err
	}

	sp := newSpinner(ctx, fmt.Sprintf("Fetching roadmap for %s", userID)).Start()
	var payload []byte
	if opts.stored {
		payload, err = cl.Fetch(ctx, userID)
	} else {
		payload, err = cl.Generate(ctx, userID)
	}
	sp.Stop()
	if err != nil {
		return err
	}

	doc, err := roadmap.Parse(payload)
	if err != nil {
		return err
	}
	phases, milestones, subtopics := doc.Counts()
	logger.Infof("Fetched roadmap: %d phases, %d milestones, %d subtopics", phases, milestones, subtopics)

	switch {
	case opts.store:
		slot, err := c.openSlot(ctx)
		if err != nil {
			return err
		}
		defer slot.Close()
		if err := slot.Put(ctx, payload); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "store roadmap payload")
		}
		printSuccess("Stored roadmap for %s in handoff slot %q", userID, slot.Name())
		printNextStep("Render it with", appName+" render")
	case opts.output != "":
		if err := os.WriteFile(opts.output, payload, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
		}
		printFile(opts.output)
	default:
		_, err = out.Write(payload)
	}
	return err
}
