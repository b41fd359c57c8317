package chesscore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GameNode is one annotated move in a Game's tree (§3, C6). Nodes form a
// doubly-linked mainline via mainlinePrev/mainlineNext; a node may own a
// list of variations, each the head of an alternate line branching from
// this node's parent position. parent is a non-owning back-pointer used
// only by variation heads to record the node they branched from — the
// arena that owns every node is the Game itself (via the mainline chains
// reachable from its root and each variation's slice), so Go's garbage
// collector reclaims the cycle the parent back-pointer forms without any
// manual bookkeeping.
type GameNode struct {
	move Move
	pos  *Position

	PreText  string
	PostText string
	NAGs     []int

	mainlinePrev *GameNode
	mainlineNext *GameNode
	parent       *GameNode
	variations   []*GameNode
}

// Move returns the node's move (zero for a sentinel root/variation head).
func (n *GameNode) Move() Move { return n.move }

// Position returns the position after this node's move.
func (n *GameNode) Position() *Position { return n.pos }

// Variations returns the alternates branching from this node.
func (n *GameNode) Variations() []*GameNode { return n.variations }

// Next returns the following mainline node, or nil at the end of a line.
func (n *GameNode) Next() *GameNode { return n.mainlineNext }

func dumpChain(n *GameNode) string {
	var parts []string
	for n != nil {
		parts = append(parts, n.move.String())
		for _, v := range n.variations {
			// v is the zero-move sentinel the variation branched from;
			// skip it the same way the mainline dump starts at
			// root.mainlineNext rather than root itself.
			parts = append(parts, "("+dumpChain(v.mainlineNext)+")")
		}
		n = n.mainlineNext
	}
	return strings.Join(parts, " ")
}

var (
	moveTextTokenRe  = regexp.MustCompile(`\(|\)|\$\d+|\{[^}]*\}|[^\s()]+`)
	moveNumberPrefix = regexp.MustCompile(`^\d+\.+`)
	outcomeTokens    = map[string]Outcome{"1-0": WhiteWon, "0-1": BlackWon, "1/2-1/2": Draw, "*": NoOutcome}
)

// ParseMoveText builds the mainline and variation structure of g from PGN
// move text such as "1.e4 (1.d4 Nf6) e5 2.Nc3". It is deliberately narrow:
// unlike a full PGN reader (tag pairs, the move database, comment
// formatting — the external PGN text lexer per §1) it only understands
// the game-tree grammar itself: move tokens, nested "(...)" variations,
// "{...}" comments, $NAG glyphs and a trailing result token.
func ParseMoveText(g *Game, text string) error {
	tokens := moveTextTokenRe.FindAllString(text, -1)
	i := 0
	var parse func() error
	parse = func() error {
		for i < len(tokens) {
			tok := tokens[i]
			switch {
			case tok == "(":
				i++
				if err := g.StartVariation(); err != nil {
					return err
				}
				if err := parse(); err != nil {
					return err
				}
			case tok == ")":
				i++
				return g.EndVariation()
			case strings.HasPrefix(tok, "$"):
				nag, err := strconv.Atoi(tok[1:])
				if err != nil {
					return fmt.Errorf("chesscore: invalid NAG %q", tok)
				}
				g.current.NAGs = append(g.current.NAGs, nag)
				i++
			case strings.HasPrefix(tok, "{"):
				g.current.PostText = strings.TrimSpace(strings.Trim(tok, "{}"))
				i++
			case moveNumberPrefix.MatchString(tok) && moveNumberPrefix.FindString(tok) == tok:
				i++ // a bare "1." or "2..." move-number token
			default:
				if o, ok := outcomeTokens[tok]; ok {
					g.outcome = o
					i++
					continue
				}
				move := moveNumberPrefix.ReplaceAllString(tok, "")
				if move == "" {
					i++
					continue
				}
				if err := g.MakeMove(move); err != nil {
					return err
				}
				i++
			}
		}
		return nil
	}
	return parse()
}
