package component

type LocalPlayerTag struct{}

var LocalPlayerTagComponent = NewComponent[LocalPlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type AimReticleTag struct{}

var AimReticleTagComponent = NewComponent[AimReticleTag]()
