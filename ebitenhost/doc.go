// Package ebitenhost runs an arbor scene inside an [Ebitengine] game loop.
//
// It translates ebiten's polled input into arbor input events, draws
// through a [Canvas] backed by ebiten/v2/vector and text/v2, and provides a
// text measurer for label leaves.
//
//	scene := arbor.NewScene()
//	// ... build the tree ...
//	err := ebitenhost.Run(scene, ebitenhost.RunConfig{Title: "demo", Width: 800, Height: 600})
//
// For full control embed [Game] in your own ebiten.Game.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
