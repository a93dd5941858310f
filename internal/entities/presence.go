package entities

// PresenceState пара флагов доступности курьера для диспетчеризации.
// Инвариант: Available => Online. Переходы только через presence-сервис.
type PresenceState struct {
	CourierID int64
	Online    bool
	Available bool
}
