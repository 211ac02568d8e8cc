package tool

import (
	"fmt"
	"strings"
)

// Tool is the active interaction mode of the board.
type Tool int

const (
	Select Tool = iota
	Draw
	Erase
	Rectangle
	Circle
	Line
	Arrow
	Text
	IconPlacing
)

var toolNames = [...]string{"select", "draw", "erase", "rectangle", "circle", "line", "arrow", "text", "icon"}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Select, Draw, Erase, Rectangle, Circle, Line, Arrow, Text, IconPlacing}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool accepts a tool name or one of its common aliases.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "select", "move", "pointer":
		return Select, nil
	case "draw", "pen", "freehand":
		return Draw, nil
	case "erase", "eraser":
		return Erase, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "circle", "ellipse":
		return Circle, nil
	case "line":
		return Line, nil
	case "arrow":
		return Arrow, nil
	case "text":
		return Text, nil
	case "icon", "icons":
		return IconPlacing, nil
	}
	return Select, fmt.Errorf("unknown tool %q", name)
}

// creates reports whether the tool captures gestures to create objects.
func (t Tool) creates() bool {
	return t != Select
}
