package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/suppliers"
)

var (
	errFrameRequired  = errors.New("commands: frame is required")
	errFieldRequired  = errors.New("commands: field is required")
	errResultRequired = errors.New("commands: result destination is required")
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	ResolveLinks      command.Commander[ResolveLinks]
	ResolveFieldLinks command.Commander[ResolveFieldLinks]
}

type linkService interface {
	ForDisplay(d suppliers.FieldDisplay) *suppliers.Supplier
	ForField(field *frame.Field, rowIndex int) *suppliers.Supplier
}

// Dependencies wires services into the command catalog.
type Dependencies struct {
	Links  linkService
	Logger logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Links == nil {
		return nil, errors.New("commands: links service is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		ResolveLinks:      resolveLinksCommand{svc: deps.Links, logger: deps.Logger},
		ResolveFieldLinks: resolveFieldLinksCommand{svc: deps.Links},
	}, nil
}

// ResolveLinks resolves the links of one cell of a frame. The field is picked
// by Field name when set, by ColIndex otherwise. Links are written to Result.
type ResolveLinks struct {
	Frame    *frame.Frame           `json:"frame"`
	Field    string                 `json:"field"`
	ColIndex int                    `json:"col_index"`
	RowIndex int                    `json:"row_index"`
	Extra    map[string]string      `json:"extra"`
	Result   *[]domain.ResolvedLink `json:"-"`
}

type resolveLinksCommand struct {
	svc    linkService
	logger logger.Logger
}

func (c resolveLinksCommand) Execute(ctx context.Context, msg ResolveLinks) error {
	if msg.Frame == nil {
		return errFrameRequired
	}
	if msg.Result == nil {
		return errResultRequired
	}
	col := msg.ColIndex
	if name := strings.TrimSpace(msg.Field); name != "" {
		idx, ok := frame.NewRowContext(msg.Frame, msg.RowIndex).FieldByName(name)
		if !ok {
			return fmt.Errorf("commands: field %q not found", name)
		}
		col = idx
	}

	supplier := c.svc.ForDisplay(suppliers.FieldDisplay{
		Frame:    msg.Frame,
		RowIndex: msg.RowIndex,
		ColIndex: col,
	})
	if supplier == nil {
		return fmt.Errorf("commands: column %d out of range", col)
	}
	*msg.Result = supplier.GetLinksContext(ctx, msg.Extra)
	c.logger.WithContext(ctx).Trace("links command resolved", "column", col, "row", msg.RowIndex, "count", len(*msg.Result))
	return nil
}

// ResolveFieldLinks resolves the links of a single field, without siblings.
type ResolveFieldLinks struct {
	Field    *frame.Field           `json:"field"`
	RowIndex int                    `json:"row_index"`
	Extra    map[string]string      `json:"extra"`
	Result   *[]domain.ResolvedLink `json:"-"`
}

type resolveFieldLinksCommand struct {
	svc linkService
}

func (c resolveFieldLinksCommand) Execute(ctx context.Context, msg ResolveFieldLinks) error {
	if msg.Field == nil {
		return errFieldRequired
	}
	if msg.Result == nil {
		return errResultRequired
	}
	*msg.Result = c.svc.ForField(msg.Field, msg.RowIndex).GetLinksContext(ctx, msg.Extra)
	return nil
}
