package parser

import (
	"github.com/leapstack-labs/sqlround/pkg/core"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/token"
)

// parseWindowSpec parses the body of OVER:
//
//	( [PARTITION BY expr_list] [ORDER BY order_list] [frame] )
//	frame → (ROWS|RANGE) bound | (ROWS|RANGE) BETWEEN bound AND bound
func (p *exprParser) parseWindowSpec(c *Cursor) (*core.WindowSpec, error) {
	if _, err := c.Expect("(", token.Parenthesis); err != nil {
		return nil, err
	}
	spec := &core.WindowSpec{}

	if c.AcceptKeyword("PARTITION") {
		if err := c.ExpectKeyword("BY"); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList(c)
		if err != nil {
			return nil, err
		}
		spec.PartitionBy = exprs
	}

	if c.AcceptKeyword("ORDER") {
		if err := c.ExpectKeyword("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList(c)
		if err != nil {
			return nil, err
		}
		spec.OrderBy = items
	}

	if c.IsKeyword("ROWS") || c.IsKeyword("RANGE") {
		frame, err := p.parseFrameSpec(c)
		if err != nil {
			return nil, err
		}
		spec.Frame = frame
	}

	if _, err := c.Expect(")", token.Parenthesis); err != nil {
		return nil, err
	}
	return spec, nil
}

func (p *exprParser) parseFrameSpec(c *Cursor) (*core.FrameSpec, error) {
	frame := &core.FrameSpec{Unit: core.FrameRows}
	if c.Next().IsKeyword("RANGE") {
		frame.Unit = core.FrameRange
	}

	if !c.AcceptKeyword("BETWEEN") {
		start, err := p.parseFrameBound(c)
		if err != nil {
			return nil, err
		}
		frame.Start = start
		return frame, nil
	}

	start, err := p.parseFrameBound(c)
	if err != nil {
		return nil, err
	}
	if err := c.ExpectKeyword("AND"); err != nil {
		return nil, err
	}
	end, err := p.parseFrameBound(c)
	if err != nil {
		return nil, err
	}
	frame.Start = start
	frame.End = &end
	return frame, nil
}

// parseFrameBound parses UNBOUNDED PRECEDING|FOLLOWING, CURRENT ROW or
// expr PRECEDING|FOLLOWING.
func (p *exprParser) parseFrameBound(c *Cursor) (core.FrameBound, error) {
	switch {
	case c.AcceptKeyword("UNBOUNDED"):
		switch {
		case c.AcceptKeyword("PRECEDING"):
			return core.FrameBound{Type: core.BoundUnboundedPreceding}, nil
		case c.AcceptKeyword("FOLLOWING"):
			return core.FrameBound{Type: core.BoundUnboundedFollowing}, nil
		}
		return core.FrameBound{}, c.Errorf(ErrUnexpectedToken, c.Current(), "PRECEDING or FOLLOWING")
	case c.IsKeyword("CURRENT") && c.PeekKeyword(1, "ROW"):
		c.Next()
		c.Next()
		return core.FrameBound{Type: core.BoundCurrentRow}, nil
	}

	offset, err := p.parseExprPrec(c, dialect.PrecedenceComparison)
	if err != nil {
		return core.FrameBound{}, err
	}
	switch {
	case c.AcceptKeyword("PRECEDING"):
		return core.FrameBound{Type: core.BoundPreceding, Offset: offset}, nil
	case c.AcceptKeyword("FOLLOWING"):
		return core.FrameBound{Type: core.BoundFollowing, Offset: offset}, nil
	}
	return core.FrameBound{}, c.Errorf(ErrUnexpectedToken, c.Current(), "PRECEDING or FOLLOWING")
}
