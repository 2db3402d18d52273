package world

type TerrainTag string

const (
	TerrainGrass    TerrainTag = "grass"
	TerrainFarmland TerrainTag = "farmland"
	TerrainHills    TerrainTag = "hills"
	TerrainMountain TerrainTag = "mountain"
	TerrainForest   TerrainTag = "forest"
	TerrainWater    TerrainTag = "water"
	TerrainSand     TerrainTag = "sand"
)

type Tile struct {
	X        int
	Y        int
	Terrain  TerrainTag
	Passable bool
}
