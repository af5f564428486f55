// Package shell is an interactive console for poking at a match3 board one
// engine call at a time.
package shell

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("shell: exit")

// Default board created when the shell starts.
const (
	DefaultWidth      = 8
	DefaultHeight     = 8
	DefaultVariations = 5
	DefaultSeed       = 1
)

type command struct {
	usage string
	help  string
	run   func(c *Controller, args []string) (string, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"new":     {"new [width height variations seed]", "populate a fresh board", (*Controller).newBoard},
		"load":    {"load variations seed ROW...", "load letter rows, top row first ('.' = empty)", (*Controller).load},
		"show":    {"show", "print the board", (*Controller).show},
		"dump":    {"dump", "print the debug serialization", (*Controller).dump},
		"swap":    {"swap x1 y1 x2 y2", "try a swap; matched tiles are left empty", (*Controller).swap},
		"hint":    {"hint", "show the first possible match", (*Controller).hint},
		"run":     {"run x y", "show the match through a tile", (*Controller).run},
		"pairs":   {"pairs x y h|v", "show same-type tiles near a tile on one axis", (*Controller).pairs},
		"down":    {"down", "compact columns and refill", (*Controller).down},
		"process": {"process", "clear every standing match", (*Controller).process},
		"resolve": {"resolve", "step until the board is stable", (*Controller).resolve},
		"help":    {"help", "list commands", (*Controller).help},
		"exit":    {"exit", "leave the shell", (*Controller).exit},
	}
}

// CommandNames returns the command names in sorted order.
func CommandNames() []string {
	names := lo.Keys(commands)
	slices.Sort(names)
	return names
}

// Controller holds the board the shell works on. It does no I/O, so
// scripts and tests can drive it through Execute.
type Controller struct {
	engine *match3.Engine
	logger *log.Logger
}

// NewController creates a controller with the default board.
func NewController(logger *log.Logger) (*Controller, error) {
	opts := []match3.Option{}
	if logger != nil {
		opts = append(opts, match3.WithLogger(logger))
	}
	c := &Controller{engine: match3.NewEngine(opts...), logger: logger}
	if _, err := c.engine.Populate(DefaultWidth, DefaultHeight, DefaultVariations, DefaultSeed); err != nil {
		return nil, err
	}
	return c, nil
}

// Engine exposes the engine for inspection.
func (c *Controller) Engine() *match3.Engine {
	return c.engine
}

// Execute runs one command line and returns its output.
func (c *Controller) Execute(line string) (string, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", fmt.Errorf("shell: %w", err)
	}
	if len(fields) == 0 {
		return "", nil
	}

	name := strings.ToLower(fields[0])
	if name == "quit" {
		name = "exit"
	}
	cmd, ok := commands[name]
	if !ok {
		return "", fmt.Errorf("shell: unknown command %q, try help", fields[0])
	}
	out, err := cmd.run(c, fields[1:])
	if err != nil && !errors.Is(err, ErrExit) {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return out, err
}

func (c *Controller) newBoard(args []string) (string, error) {
	w, h, v, seed := DefaultWidth, DefaultHeight, DefaultVariations, int64(DefaultSeed)
	if len(args) != 0 {
		if len(args) != 4 {
			return "", errors.New("want width height variations seed")
		}
		nums, err := ints(args[:3])
		if err != nil {
			return "", err
		}
		w, h, v = nums[0], nums[1], nums[2]
		if seed, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			return "", fmt.Errorf("bad seed %q", args[3])
		}
	}
	if _, err := c.engine.Populate(w, h, v, seed); err != nil {
		return "", err
	}
	return c.board(), nil
}

func (c *Controller) load(args []string) (string, error) {
	if len(args) < 3 {
		return "", errors.New("want variations seed and at least one row")
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("bad variations %q", args[0])
	}
	seed, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad seed %q", args[1])
	}
	rows := lo.Map(args[2:], func(r string, _ int) string { return strings.ToUpper(r) })
	if err := c.engine.Load(rows, v, seed); err != nil {
		return "", err
	}
	return c.board(), nil
}

func (c *Controller) show([]string) (string, error) {
	return c.board(), nil
}

func (c *Controller) dump([]string) (string, error) {
	return c.engine.DebugGrid(), nil
}

func (c *Controller) swap(args []string) (string, error) {
	nums, err := ints(args)
	if err != nil || len(nums) != 4 {
		return "", errors.New("want x1 y1 x2 y2")
	}
	a, b := c.engine.Tile(nums[0], nums[1]), c.engine.Tile(nums[2], nums[3])
	if a == nil || b == nil {
		return "", errors.New("tile off the board")
	}
	if d := abs(a.X-b.X) + abs(a.Y-b.Y); d != 1 {
		return "", errors.New("tiles are not adjacent")
	}

	matched := c.engine.TrySwap(a, b)
	if matched == nil {
		return "rejected\n" + c.board(), nil
	}
	return fmt.Sprintf("matched %d: %s\n%s", len(matched), tileList(matched), c.board()), nil
}

func (c *Controller) hint([]string) (string, error) {
	m, ok := c.engine.FirstMove()
	if !ok {
		return "no move", nil
	}
	return fmt.Sprintf("%s: %s\nswap %d %d %d %d", m.Pattern, tileList(m.Tiles), m.From.X, m.From.Y, m.To.X, m.To.Y), nil
}

func (c *Controller) run(args []string) (string, error) {
	t, err := c.tileArg(args)
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("tile is empty")
	}
	tiles := c.engine.FindRun(t)
	if len(tiles) == 0 {
		return "no match", nil
	}
	return tileList(tiles), nil
}

func (c *Controller) pairs(args []string) (string, error) {
	if len(args) != 3 {
		return "", errors.New("want x y h|v")
	}
	t, err := c.tileArg(args[:2])
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("tile is empty")
	}

	var axis match3.Axis
	switch strings.ToLower(args[2]) {
	case "h", "horizontal":
		axis = match3.Horizontal
	case "v", "vertical":
		axis = match3.Vertical
	default:
		return "", fmt.Errorf("bad axis %q", args[2])
	}

	tiles := c.engine.FindNearPairs(t, axis)
	if len(tiles) == 0 {
		return "no pairs", nil
	}
	return tileList(tiles), nil
}

func (c *Controller) down([]string) (string, error) {
	moved := c.engine.MoveTilesDown()
	return fmt.Sprintf("moved %d\n%s", len(moved), c.board()), nil
}

func (c *Controller) process([]string) (string, error) {
	matched := c.engine.FindAndProcessMatches()
	if len(matched) == 0 {
		return "no matches", nil
	}
	return fmt.Sprintf("matched %d: %s\n%s", len(matched), tileList(matched), c.board()), nil
}

func (c *Controller) resolve([]string) (string, error) {
	var steps, waves, cleared int
	for {
		tiles, compacted, stable := c.engine.Step()
		steps++
		if stable {
			break
		}
		if !compacted {
			waves++
			cleared += len(tiles)
		}
	}
	if c.logger != nil {
		c.logger.Debug("board resolved", "steps", steps, "waves", waves, "cleared", cleared)
	}
	return fmt.Sprintf("%d waves, %d tiles cleared\n%s", waves, cleared, c.board()), nil
}

func (c *Controller) help([]string) (string, error) {
	var sb strings.Builder
	for _, name := range CommandNames() {
		cmd := commands[name]
		fmt.Fprintf(&sb, "  %-36s %s\n", cmd.usage, cmd.help)
	}
	return sb.String(), nil
}

func (c *Controller) exit([]string) (string, error) {
	return "", ErrExit
}

// board renders the grid with row and column labels, top row first.
func (c *Controller) board() string {
	g := c.engine.Grid()
	rows := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")

	var sb strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&sb, "%2d %s\n", g.Height()-1-i, row)
	}
	sb.WriteString("   ")
	for x := range g.Width() {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (c *Controller) tileArg(args []string) (*match3.Tile, error) {
	nums, err := ints(args)
	if err != nil || len(nums) != 2 {
		return nil, errors.New("want x y")
	}
	t := c.engine.Tile(nums[0], nums[1])
	if t == nil {
		return nil, errors.New("tile off the board")
	}
	return t, nil
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = n
	}
	return out, nil
}

func tileList(tiles []*match3.Tile) string {
	return strings.Join(lo.Map(tiles, func(t *match3.Tile, _ int) string { return t.String() }), ", ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
