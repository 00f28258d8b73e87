// Copyright (c) 2021 Silvano DAL ZILIO
//
// GNU Affero GPL v3

// Package netfile reads the Tina ".net" textual format for Time Petri Nets
// into this engine's model.Net/model.Context pair. The lexer (token.go,
// scanner.go) is unchanged from the teacher's own nets package; parser.go
// is rewritten to build the richer, struct-of-transition model.Net instead
// of the teacher's parallel-slice-per-field Net.
package netfile

//
// code inspired by: http://blog.gopheracademy.com/advent-2014/parsers-lexers/
//

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dalzilio/tpnv/internal/bound"
	"github.com/dalzilio/tpnv/internal/model"
)

// parser represents a net parser.
type parser struct {
	s      *scanner
	name   string // net name, from the optional 'net <ident>' declaration
	net    *model.Net
	ctx    *model.Context
	pl, tr map[string]int // list of place and trans. identifiers
	tok    token          // last read token
	ahead  bool           // true if there is a token stored in tok
}

// Parse reads a textual ".net" representation of a Time Petri Net from r and
// returns it as a *model.Model of KindPetri: a Net together with the
// Context binding every place name to a discrete variable of the same index
// (net.Pl[i] <-> ctx.Vars[i]), so a query can refer to a place's marking by
// name. It returns an error if there was a problem while reading the
// specification.
func Parse(r io.Reader) (*model.Model, error) {
	p := &parser{
		s:   &scanner{r: bufio.NewReader(r), pos: &textPos{}},
		net: &model.Net{},
		ctx: model.NewContext(),
		pl:  make(map[string]int),
		tr:  make(map[string]int),
	}
	if err := p.parse(); err != nil {
		return nil, fmt.Errorf("netfile: error parsing net: %s", err)
	}
	return &model.Model{Kind: model.KindPetri, Name: p.name, Context: p.ctx, Net: p.net}, nil
}

// scan returns the next token from the underlying scanner.
// If a token has been unscanned then read that instead.
func (p *parser) scan() token {
	if p.ahead {
		p.ahead = false
	} else {
		p.tok = p.s.scan()
	}
	return p.tok
}

// unscan backtracks the currently read token.
func (p *parser) unscan() {
	p.ahead = true
}

// checkPL returns the index of a place in the net, declaring both the place
// and its backing Context variable if this is the first time s is seen. We
// do not support place labels at the moment.
func (p *parser) checkPL(s string) int {
	n, ok := p.pl[s]
	if !ok {
		n = len(p.pl)
		p.pl[s] = n
		p.net.Pl = append(p.net.Pl, model.Place{Name: s})
		if _, err := p.ctx.DeclareVar(s, 0, math.MaxInt64); err != nil {
			// checkPL only ever declares a name once, guarded by p.pl.
			panic(fmt.Sprintf("netfile: %s", err))
		}
	}
	return n
}

// checkTR returns the index of a transition in the net and creates one if
// necessary, with the default [0,+inf) firing window every later tokTIMINGC
// narrows.
func (p *parser) checkTR(s string) int {
	n, ok := p.tr[s]
	if !ok {
		n = len(p.tr)
		p.tr[s] = n
		p.net.Tr = append(p.net.Tr, model.Transition{Name: s, Time: bound.New(bound.Large(0), bound.PlusInf)})
		p.net.Prio = append(p.net.Prio, nil)
	}
	return n
}

func (p *parser) parse() error {
	for {
		switch tok := p.scan(); tok.tok {
		case tokEOF:
			return nil
		case tokNET:
			tok = p.scan()
			if tok.tok != tokIDENT {
				return fmt.Errorf(" found %q; expected identifier after NET at %s", tok.s, tok.pos.String())
			}
			p.name = tok.s
		case tokTR:
			if e := p.parseTR(); e != nil {
				return e
			}
		case tokPL:
			if e := p.parsePL(); e != nil {
				return e
			}
		case tokPRIO:
			if e := p.parsePRIO(); e != nil {
				return e
			}
		case tokNOTE:
			if e := p.parseNOTE(); e != nil {
				return e
			}
		default:
			return fmt.Errorf(" found %q; expected keywords, %s",
				tok.s, tok.pos.String())
		}
	}
}

// parseTimingConstraint turns a scanned tokTIMINGC literal ("[ 2 5 ]", "[ 2 w ]", ...)
// into a bound.Interval.
func parseTimingConstraint(lit string, pos *textPos) (bound.Interval, error) {
	arr := strings.Fields(lit)
	if len(arr) != 4 {
		return bound.Interval{}, fmt.Errorf(" bad time interval declaration, %s at %s", lit, pos.String())
	}
	lv, err := strconv.Atoi(arr[1])
	if err != nil {
		return bound.Interval{}, fmt.Errorf(" in timing interval, %s at %s", lit, pos.String())
	}
	var lower bound.Bound
	if arr[0] == "[" {
		lower = bound.Large(lv)
	} else {
		lower = bound.Strict(lv)
	}
	var upper bound.Bound
	if arr[2] == "w" {
		upper = bound.PlusInf
	} else {
		uv, err := strconv.Atoi(arr[2])
		if err != nil || uv < lv {
			return bound.Interval{}, fmt.Errorf(" in timing interval, %s at %s", lit, pos.String())
		}
		if arr[3] == "[" {
			upper = bound.Strict(uv)
		} else {
			upper = bound.Large(uv)
		}
	}
	i := bound.New(lower, upper)
	if i.IsEmpty() {
		return bound.Interval{}, fmt.Errorf(" empty time interval, %s at %s", lit, pos.String())
	}
	return i, nil
}

func (p *parser) parseTR() error {
	var err error
	tok := p.scan()
	if tok.tok != tokIDENT {
		return fmt.Errorf(" found %q, expected valid transition name at %s", tok.s, tok.pos.String())
	}
	index := p.checkTR(tok.s)
	// we should check for an (optional) label then (also optional) time
	// interval, in this order.
	//    'tr' <transition> {":" <label>} {<interval>} {<tinput> -> <toutput>}
	afterArrow := false
	haslabel := false
	hastinterval := false
	hasarcs := false
	for {
		switch tok := p.scan(); tok.tok {
		case tokLABEL:
			if haslabel || hastinterval || hasarcs {
				return fmt.Errorf(" bad label declaration, at %s", tok.pos.String())
			}
			haslabel = true
			p.net.Tr[index].Label = tok.s
		case tokTIMINGC:
			if hastinterval || hasarcs {
				return fmt.Errorf(" bad time interval declaration, at %s", tok.pos.String())
			}
			hastinterval = true
			parsed, err := parseTimingConstraint(tok.s, &tok.pos)
			if err != nil {
				return err
			}
			merged := p.net.Tr[index].Time.Intersection(parsed)
			if merged.IsEmpty() {
				return fmt.Errorf(" empty time interval when computing intersection, for transition %s, at %s", p.net.Tr[index].Name, tok.pos.String())
			}
			p.net.Tr[index].Time = merged
		case tokARROW:
			if afterArrow {
				return fmt.Errorf(" cannot have two arrows (->) in tr declaration at %s", tok.pos.String())
			}
			hasarcs = true
			afterArrow = true
		case tokIDENT:
			// tinput  ::= <place>{<arc>}
			// toutput ::= <place>{<normal_arc>}
			pindex := p.checkPL(tok.s)
			hasarcs = true
			tok = p.scan()
			mult := 1
			ok := false
			switch tok.tok {
			case tokREAD:
				if afterArrow {
					return fmt.Errorf(" read arcs in outputs of transition at %s", tok.pos.String())
				}
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				p.net.Tr[index].Cond = setIfBigger(p.net.Tr[index].Cond, pindex, mult)
			case tokINHIBITOR:
				if afterArrow {
					return fmt.Errorf(" inhibitor arcs in outputs of transition at %s", tok.pos.String())
				}
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				p.net.Tr[index].Inhib = setIfLower(p.net.Tr[index].Inhib, pindex, mult)
			case tokSTAR:
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				ok = true
				fallthrough
			default:
				if !ok {
					p.unscan()
				}
				if afterArrow {
					p.net.Tr[index].Delta = p.net.Tr[index].Delta.AddToPlace(pindex, mult)
				} else {
					p.net.Tr[index].Delta = p.net.Tr[index].Delta.AddToPlace(pindex, -mult)
					p.net.Tr[index].Pre = p.net.Tr[index].Pre.AddToPlace(pindex, -mult)
					p.net.Tr[index].Cond = p.net.Tr[index].Cond.AddToPlace(pindex, mult)
				}
			}
		default:
			p.unscan()
			return nil
		}
	}
}

func (p *parser) parsePL() error {
	//   pldesc ::= 'pl' <place> {":" <label>} {(<marking>)} {<pinput> -> <poutput>}
	var err error
	tok := p.scan()
	if tok.tok != tokIDENT {
		return fmt.Errorf(" found %q, expected valid place name at %s", tok.s, tok.pos.String())
	}
	index := p.checkPL(tok.s)
	afterArrow := false
	haslabel := false
	hasinitm := false
	hasarcs := false
	for {
		switch tok := p.scan(); tok.tok {
		case tokLABEL:
			if haslabel || hasinitm || hasarcs {
				return fmt.Errorf(" bad label declaration, at %s", tok.pos.String())
			}
			haslabel = true
			p.net.Pl[index].Label = tok.s
		case tokMARKING:
			if hasinitm || hasarcs {
				return fmt.Errorf(" bad marking declaration, at %s", tok.pos.String())
			}
			plm, err := mconvert(tok.s)
			if err != nil {
				return fmt.Errorf(" in marking, %s (%s) at %s", tok.s, err, tok.pos.String())
			}
			hasinitm = true
			p.net.Initial = p.net.Initial.AddToPlace(index, plm)
		case tokARROW:
			if afterArrow {
				return fmt.Errorf(" cannot have two arrows (->) in pl declaration at %s", tok.pos.String())
			}
			hasarcs = true
			afterArrow = true
		case tokIDENT:
			// tindex is the name of a transition
			//    pinput  ::= <transition>{<normal_arc>}
			//    poutput ::= <transition>{arc}
			tindex := p.checkTR(tok.s)
			hasarcs = true
			tok = p.scan()
			mult := 1
			ok := false
			switch tok.tok {
			case tokREAD:
				if !afterArrow {
					return fmt.Errorf(" read arcs in inputs of place, at %s", tok.pos.String())
				}
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				p.net.Tr[tindex].Cond = setIfBigger(p.net.Tr[tindex].Cond, index, mult)
			case tokINHIBITOR:
				if !afterArrow {
					return fmt.Errorf(" inhibitor arcs in inputs of place at %s", tok.pos.String())
				}
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				p.net.Tr[tindex].Inhib = setIfLower(p.net.Tr[tindex].Inhib, index, mult)
			case tokSTAR:
				mult, err = mconvert(tok.s)
				if err != nil {
					return fmt.Errorf(" in multiplicity, %s (%s) at %s", tok.s, err, tok.pos.String())
				}
				ok = true
				fallthrough
			default:
				if !ok {
					p.unscan()
				}
				if afterArrow {
					p.net.Tr[tindex].Delta = p.net.Tr[tindex].Delta.AddToPlace(index, -mult)
					p.net.Tr[tindex].Pre = p.net.Tr[tindex].Pre.AddToPlace(index, -mult)
					p.net.Tr[tindex].Cond = p.net.Tr[tindex].Cond.AddToPlace(index, mult)
				} else {
					p.net.Tr[tindex].Delta = p.net.Tr[tindex].Delta.AddToPlace(index, mult)
				}
			}
		default:
			p.unscan()
			return nil
		}
	}
}

func (p *parser) parseNOTE() error {
	tok := p.scan()
	if tok.tok != tokIDENT {
		return fmt.Errorf(" found %q, expected a note identifier at %s", tok.s, tok.pos.String())
	}
	tok = p.scan()
	if tok.tok != tokINT {
		return fmt.Errorf(" found %q, expected a note index at %s", tok.s, tok.pos.String())
	}
	tok = p.scan()
	if tok.tok != tokIDENT {
		return fmt.Errorf(" found %q, expected a note body at %s", tok.s, tok.pos.String())
	}
	return nil
}

func (p *parser) parsePRIO() error {
	pre, post := []int{}, []int{}
	isgt := false
	var tok token
	for {
		tok = p.scan()
		if tok.tok != tokIDENT {
			break
		}
		n := p.checkTR(tok.s)
		pre = setAdd(pre, n)
	}
	if tok.tok != tokGT && tok.tok != tokLT {
		return fmt.Errorf("found %q, expected priority > or < at %s", tok.s, tok.pos.String())
	}
	if tok.tok == tokGT {
		isgt = true
	}
	for {
		tok = p.scan()
		if tok.tok != tokIDENT {
			if isgt {
				for _, t := range pre {
					p.net.Prio[t] = setUnion(p.net.Prio[t], post)
				}
			} else {
				for _, t := range post {
					p.net.Prio[t] = setUnion(p.net.Prio[t], pre)
				}
			}
			p.unscan()
			return nil
		}
		n := p.checkTR(tok.s)
		post = setAdd(post, n)
	}
}

// setIfBigger returns m with the multiplicity of place pl set to mult, but
// only if mult is bigger than pl's current multiplicity in m (the "take the
// largest read-arc weight" rule for a place read from several arcs).
func setIfBigger(m model.Marking, pl, mult int) model.Marking {
	for _, a := range m {
		if a.Pl == pl {
			if mult > a.Mult {
				return m.AddToPlace(pl, mult-a.Mult)
			}
			return m
		}
	}
	return m.AddToPlace(pl, mult)
}

// setIfLower returns m with the multiplicity of place pl set to mult, but
// only if mult is lower than pl's current multiplicity in m (the "take the
// tightest inhibitor threshold" rule).
func setIfLower(m model.Marking, pl, mult int) model.Marking {
	for _, a := range m {
		if a.Pl == pl {
			if mult < a.Mult {
				return m.AddToPlace(pl, mult-a.Mult)
			}
			return m
		}
	}
	return m.AddToPlace(pl, mult)
}

// setAdd takes a sorted list of integers (here transitions index), s, and adds
// v to it.
func setAdd(s []int, v int) []int {
	if len(s) == 0 {
		return []int{v}
	}
	for i := range s {
		if s[i] == v {
			return s
		}
		if s[i] > v {
			res := make([]int, len(s)+1)
			copy(res[:i], s[:i])
			copy(res[i+1:], s[i:])
			res[i] = v
			return res
		}
	}
	res := make([]int, len(s))
	copy(res, s)
	res = append(res, v)
	return res
}

// setUnion does set union between two slices of sorted integers, s1 and s2.
func setUnion(s1, s2 []int) []int {
	res := make([]int, len(s1))
	copy(res, s1)
	for _, v := range s2 {
		res = setAdd(res, v)
	}
	return res
}

// mconvert is used to convert values found on markings and weights into
// integers. We take into account the possibility that s ends with a
// "multiplier", such as `3K` (3000), which is valid in Tina.
func mconvert(s string) (int, error) {
	if len(s) == 0 {
		return 0, errors.New("empty value in weights or marking")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		if ch := s[len(s)-1]; ch == 'K' || ch == 'M' || ch == 'G' || ch == 'T' || ch == 'P' || ch == 'E' {
			v, err = strconv.Atoi(s[:len(s)-1])
			if err != nil {
				return 0, fmt.Errorf("not a valid weight or marking; %s", err)
			}
			switch ch {
			case 'K':
				return v * 1000, nil
			case 'M':
				return v * 1000000, nil
			case 'G':
				return v * 1000000000, nil
			case 'T':
				return v * 1000000000000, nil
			case 'P':
				return v * 1000000000000000, nil
			case 'E':
				return v * 1000000000000000000, nil
			default:
				return v, fmt.Errorf("not a valid multiplier in weight or marking; %v", ch)
			}
		}
	}
	return v, nil
}
