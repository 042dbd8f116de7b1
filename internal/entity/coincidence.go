package entity

// CoincidenceWebhook is the payload the data platform delivers when a row is
// inserted into coincidencias_notificadas. Only record.coincidencia_id is
// read; every other column of the inserted row is ignored.
type CoincidenceWebhook struct {
	Record *CoincidenceRecord `json:"record" binding:"required"`
}

type CoincidenceRecord struct {
	CoincidenciaID string `json:"coincidencia_id" binding:"required"`
}

// MatchView is one row of vista_coincidencias_potenciales: a potential match
// between a lost-pet report and a found-pet report, with the similarity
// percentage computed upstream by the platform.
type MatchView struct {
	CoincidenciaID         string  `json:"coincidencia_id"`
	UsuarioPerdidaID       string  `json:"usuario_perdida_id"`
	PorcentajeCoincidencia float64 `json:"porcentaje_coincidencia"`
	Especie                string  `json:"especie"`
	// Raza is nullable: the matched report may not carry a breed.
	Raza *string `json:"raza"`
}

// PushTokenRow is the shape returned by the user_push_tokens select.
type PushTokenRow struct {
	UserID    string `json:"user_id,omitempty"`
	PushToken string `json:"push_token"`
}
