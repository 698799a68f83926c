package handlers

import (
	"causalmap/application/commands"
	"causalmap/application/commands/bus"
)

// Handlers groups the command handlers of the application.
type Handlers struct {
	Graphs  *GraphHandler
	Nodes   *NodeHandler
	Edges   *EdgeHandler
	Factors *FactorHandler
}

// Register binds every command type to its handler on b.
func (h Handlers) Register(b *bus.CommandBus) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateGraphCommand{}, typed(h.Graphs.CreateGraph)},
		{commands.DeleteGraphCommand{}, typed(h.Graphs.DeleteGraph)},
		{commands.ClearGraphCommand{}, typed(h.Graphs.ClearGraph)},
		{commands.ApplyArchetypeCommand{}, typed(h.Graphs.ApplyArchetype)},
		{commands.AddNodeCommand{}, typed(h.Nodes.AddNode)},
		{commands.UpdateNodeCommand{}, typed(h.Nodes.UpdateNode)},
		{commands.RemoveNodeCommand{}, typed(h.Nodes.RemoveNode)},
		{commands.AddNodeFromFactorCommand{}, typed(h.Nodes.AddNodeFromFactor)},
		{commands.AddEdgeCommand{}, typed(h.Edges.AddEdge)},
		{commands.UpdateEdgeCommand{}, typed(h.Edges.UpdateEdge)},
		{commands.RemoveEdgeCommand{}, typed(h.Edges.RemoveEdge)},
		{commands.AddFactorCommand{}, typed(h.Factors.AddFactor)},
		{commands.UpdateFactorCommand{}, typed(h.Factors.UpdateFactor)},
		{commands.RemoveFactorCommand{}, typed(h.Factors.RemoveFactor)},
	}

	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
