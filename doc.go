// Package arbor is a retained-mode UI scene graph: a node tree with cached
// flexbox/block/grid layout, absolute placement, hit testing and an
// interaction controller for hover, drag and drop, focus and keyboard input.
//
// Arbor has no platform knowledge. A host (see arbor/ebitenhost for
// [Ebitengine]) feeds it normalized [InputEvent]s and draws through a
// [Canvas].
//
// # Quick start
//
//	scene := arbor.NewScene()
//	tree := scene.Tree()
//
//	st := arbor.DefaultStyle()
//	st.Direction = arbor.Row
//	tree.SetStyle(scene.Root(), st)
//
//	a := tree.AddNode(arbor.Style{Width: arbor.Percent(50), FlexShrink: 1})
//	tree.AddChild(scene.Root(), a)
//	scene.Register(a, &button{})
//
//	scene.Resize(800, 600)
//	scene.HandleInput(arbor.InputEvent{Kind: arbor.InputPointerMoved, X: 10, Y: 10})
//
// # Nodes and layout
//
// [Tree] stores nodes behind generation-checked [NodeID] handles. Using a
// handle after its node was removed, or one from another tree, panics.
// Style changes mark the node and its ancestors dirty; [Tree.ComputeLayout]
// recomputes only dirty nodes and serves everything else from a per-node
// cache. Solvers are pluggable per [Display] mode through [Tree.SetSolver],
// and leaf sizes can come from a [MeasureFunc].
//
// # Placement and hit testing
//
// [Tree.Placement] resolves absolute geometry from the cached layout.
// Offsets ([Tree.SetOffset]) and scroll positions ([Tree.SetScroll]) shift
// nodes without touching the layout cache. [Tree.HitTest] returns the path
// from the root to the topmost node under a point, honoring paint order.
//
// # Interaction
//
// Each node may carry an [Object] handler. Before a callback runs the
// handler is taken out of the registry and put back afterwards, so a
// callback may freely mutate the scene. A handler that grabs its own node
// during its callback finds nothing there; one that calls [Scene.Drop] on
// itself leaves the node inert.
//
// Hover notifies only the topmost node. A press held longer than the drag
// threshold becomes a drag on the next move. Focus follows primary presses
// and Tab, and key events bubble from the focused node to the root.
//
// Smooth scrolling and offset animation use tweens from [gween]; interaction
// events can be mirrored into a [Donburi] world with arbor/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
