package storage

// ActivityRecord son los contadores del período actual para un usuario.
// La ausencia de fila equivale a {0, 0}.
type ActivityRecord struct {
	UserID     string
	Messages   int
	ModActions int
}
