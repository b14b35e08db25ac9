// Package evergreen is a particle choreography engine for an interactive
// 3D Christmas tree, built for [Ebitengine].
//
// Thousands of foliage needles, ornaments, a star and user photos each
// have a tree position and a chaos position. Every frame they glide toward
// the position the current mode asks for, so toggling modes reads as the
// tree exploding into a cloud and reassembling. A gallery mode pulls the
// photos onto a camera-facing spiral while the tree stays formed.
//
// # Quick start
//
//	scene, err := evergreen.NewScene(evergreen.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.EnableInput(true)
//
//	// each frame
//	scene.Update(1.0 / 60)
//
// Scene owns no renderer. Read the populations back with [Scene.Foliage],
// [Scene.Ornaments], [Scene.Star], [Scene.Photos] and [Scene.Dust], map
// them to world space with [Scene.ToWorld] and project them with
// [Scene.Camera]. examples/tree draws them with ebiten's vector package.
//
// # Modes
//
// [Controller] owns the mode. [Controller.ToggleChaos] and
// [Controller.ToggleGallery] switch it; the change is instant and the
// motion follows over the next frames, with each kind settling at its own
// rate. Toggling twice before anything settles simply turns the motion
// around.
//
// # Photos
//
// [Controller.SubmitPhotos] decodes images on background goroutines,
// downscales them to at most 1024 pixels, builds mip levels and places them
// on the tree, in the chaos cloud and on the gallery spiral. Files that fail
// to decode are skipped and reported; the rest of the batch still lands.
//
// # Rotation
//
// Dragging horizontally spins the tree. Releasing keeps the momentum,
// which decays by friction to a slow idle spin that never stops.
//
// # Events
//
// An [EventSink] set with [Scene.SetEventSink] sees mode changes and photo
// batches on the frame goroutine. The ecs sub-package forwards them to a
// [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package evergreen
