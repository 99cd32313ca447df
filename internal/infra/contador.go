package infra

// ContadorDocumentos adapts the documents_written_total counter to the
// service layer.
type ContadorDocumentos struct{ m *Metrics }

func NewContadorDocumentos(m *Metrics) *ContadorDocumentos {
	return &ContadorDocumentos{m: m}
}

func (c *ContadorDocumentos) Inc(coleccion string) {
	c.m.DocumentosEscritos.WithLabelValues(coleccion).Inc()
}
