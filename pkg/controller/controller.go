// Package controller drives the roadmap flow: collect a user id, make sure a
// roadmap exists for it, hand the payload to the render view, and lay it out.
//
// Each step is a plain function of its inputs returning a [Navigation]
// outcome; the caller decides how to present the next view. The steps mirror
// the three screens:
//
//   - entry ([Controller.Submit]): check whether a roadmap exists; if it does,
//     fetch it and go straight to the roadmap view, otherwise go to loading
//   - loading ([Controller.Generate]): generate the roadmap, then go to the
//     roadmap view; on any failure go back to entry
//   - roadmap ([Controller.View]): take the payload from the handoff slot and
//     build the scene
//
// [Controller.Open] runs the whole flow without the slot for callers that
// hold the document themselves.
package controller

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
	"github.com/matzehuels/roadtower/pkg/observability"
	"github.com/matzehuels/roadtower/pkg/render/layout"
	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

// Backend is the part of the roadmap service the controller needs.
// *client.Client implements it.
type Backend interface {
	CheckExists(ctx context.Context, userID string) (bool, error)
	Generate(ctx context.Context, userID string) ([]byte, error)
}

// Controller holds the collaborators of the flow. It keeps no other state,
// so one Controller may serve concurrent flows as long as each has its own
// slot.
type Controller struct {
	backend    Backend
	slot       handoff.Slot
	layoutOpts []layout.Option
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayoutOptions passes options to the layout engine.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(c *Controller) { c.layoutOpts = opts }
}

// New creates a Controller. A nil slot selects a fresh in-memory slot.
func New(backend Backend, slot handoff.Slot, opts ...Option) *Controller {
	if slot == nil {
		slot = handoff.NewMemory(handoff.DefaultSlot)
	}
	c := &Controller{backend: backend, slot: slot}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Slot returns the handoff slot the controller writes to and takes from.
func (c *Controller) Slot() handoff.Slot { return c.slot }

// CheckExists reports whether the service already stores a roadmap for
// userID. An empty id fails with ErrCodeMissingInput before any request.
func (c *Controller) CheckExists(ctx context.Context, userID string) (bool, error) {
	if err := errors.ValidateUserID(userID); err != nil {
		return false, err
	}
	return c.backend.CheckExists(ctx, userID)
}

// FetchOrGenerate asks the service for the roadmap of userID, which returns
// the stored one when it exists and generates one otherwise. It returns the
// decoded document together with the raw payload.
func (c *Controller) FetchOrGenerate(ctx context.Context, userID string) (*roadmap.Document, []byte, error) {
	if err := errors.ValidateUserID(userID); err != nil {
		return nil, nil, err
	}
	payload, err := c.backend.Generate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := roadmap.Parse(payload)
	if err != nil {
		return nil, nil, err
	}
	return doc, payload, nil
}

// Submit handles the entry view. When a roadmap exists it is fetched, stored
// in the slot, and the flow moves to the roadmap view; otherwise the flow
// moves to the loading view. On failure the flow stays on the entry view and
// nothing is stored.
func (c *Controller) Submit(ctx context.Context, userID string) (Navigation, error) {
	exists, err := c.CheckExists(ctx, userID)
	if err != nil {
		return stay(), err
	}
	if !exists {
		return toLoading(userID), nil
	}

	_, payload, err := c.FetchOrGenerate(ctx, userID)
	if err != nil {
		return stay(), err
	}
	if err := c.slot.Put(ctx, payload); err != nil {
		return stay(), errors.Wrap(errors.ErrCodeInternal, err, "store roadmap payload")
	}
	return toRoadmap(userID), nil
}

// Generate handles the loading view: it has the service generate the roadmap,
// stores it in the slot and moves to the roadmap view. Any failure, including
// a missing user id, sends the flow back to the entry view.
func (c *Controller) Generate(ctx context.Context, userID string) (Navigation, error) {
	_, payload, err := c.FetchOrGenerate(ctx, userID)
	if err != nil {
		return toEntry(), err
	}
	if err := c.slot.Put(ctx, payload); err != nil {
		return toEntry(), errors.Wrap(errors.ErrCodeInternal, err, "store roadmap payload")
	}
	return toRoadmap(userID), nil
}

// Open runs the entry and loading steps back to back and returns the
// document directly instead of going through the slot.
func (c *Controller) Open(ctx context.Context, userID string) (*roadmap.Document, error) {
	if _, err := c.CheckExists(ctx, userID); err != nil {
		return nil, err
	}
	doc, _, err := c.FetchOrGenerate(ctx, userID)
	return doc, err
}

// Take removes the payload from the slot and decodes it. An empty slot fails
// with ErrCodeMissingPayload and undecodable data with
// ErrCodeMalformedPayload.
func (c *Controller) Take(ctx context.Context) (*roadmap.Document, error) {
	data, err := c.slot.Take(ctx)
	if stderrors.Is(err, handoff.ErrEmpty) {
		return nil, errors.New(errors.ErrCodeMissingPayload, "no roadmap data found")
	}
	if stderrors.Is(err, handoff.ErrCorrupt) {
		return nil, errors.Wrap(errors.ErrCodeMalformedPayload, err, "malformed roadmap JSON data")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read roadmap payload")
	}
	return roadmap.Parse(data)
}

// View handles the roadmap view: it takes the payload from the slot and lays
// it out. The slot is empty afterwards whether or not the payload decoded.
func (c *Controller) View(ctx context.Context) (scene.Scene, error) {
	doc, err := c.Take(ctx)
	if err != nil {
		return scene.Scene{}, err
	}
	return c.Layout(ctx, doc), nil
}

// Layout builds the scene for doc and reports it to the render hooks.
func (c *Controller) Layout(ctx context.Context, doc *roadmap.Document) scene.Scene {
	hooks := observability.Render()
	hooks.OnLayoutStart(ctx, len(doc.Phases()))
	start := time.Now()

	s := layout.Build(doc, c.layoutOpts...)

	n := 0
	for _, g := range s.Groups {
		n += len(g.Items)
	}
	hooks.OnLayoutComplete(ctx, n, s.Height, time.Since(start))
	return s
}
