// internal/event/types.go
package event

const (
	BoardChanged    EventType = "BoardChanged"    // any successful mutating transaction
	UnitPlaced      EventType = "UnitPlaced"      // Data: position ID
	UnitRemoved     EventType = "UnitRemoved"     // Data: position ID
	UnitMoved       EventType = "UnitMoved"       // Data: [2]int{from, to}
	UnitsSwapped    EventType = "UnitsSwapped"    // Data: [2]int{a, b}
	CapacityChanged EventType = "CapacityChanged" // Data: team
	BoardCleared    EventType = "BoardCleared"
)
