package component

type SlugTag struct{}

var SlugTagComponent = NewComponent[SlugTag]()

type SaltTag struct{}

var SaltTagComponent = NewComponent[SaltTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type TouchMarkerTag struct{}

var TouchMarkerTagComponent = NewComponent[TouchMarkerTag]()
