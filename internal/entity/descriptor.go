package entity

// Renderer descriptors. The renderer resolves shader and buffer names.
const (
	HullDescriptor = `{"shader":"vertex_color","count":36,` +
		`"attributes":{"a_position":"ship_vertices","a_color":"cube_vertex_colors"},` +
		`"uniforms":{"objectData":["u_matrix"]}}`

	CubeDescriptor = `{"shader":"vertex_color","count":36,` +
		`"attributes":{"a_position":"cube_vertices","a_color":"cube_vertex_colors"},` +
		`"uniforms":{"objectData":["u_matrix"]}}`

	QuadDescriptor = `{"shader":"test","count":6,` +
		`"attributes":{"a_position":"quad"},` +
		`"uniforms":{"objectData":["u_matrix"]}}`
)
