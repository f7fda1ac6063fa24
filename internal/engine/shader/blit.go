package shader

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Blit presents a CPU-shaded frame as a fullscreen textured quad.
// Upload pushes the packed RGBA bytes into a texture and Draw stretches
// it over the viewport with a single triangle strip.
type Blit struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	locTexture int32

	// Current texture dimensions; a size change reallocates storage.
	width  int
	height int
}

// NewBlit compiles the blit shader and allocates the quad geometry.
// Requires a current OpenGL context.
func NewBlit() (*Blit, error) {
	b := &Blit{}

	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec2 aPos;
		layout (location = 1) in vec2 aTexCoord;

		out vec2 vTexCoord;

		void main() {
			gl_Position = vec4(aPos, 0.0, 1.0);
			vTexCoord = aTexCoord;
		}
	`

	fragmentShaderSource := `
		#version 410 core

		uniform sampler2D uTexture;

		in vec2 vTexCoord;
		out vec4 FragColor;

		void main() {
			FragColor = texture(uTexture, vTexCoord);
		}
	`

	program, err := CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile blit shader: %w", err)
	}
	b.program = program
	b.locTexture = GetUniform(program, "uTexture")

	// Fullscreen triangle strip. Row 0 of the uploaded frame is the top
	// of the image, so the top-left vertex samples uv (0,0).
	vertices := []float32{
		// pos(x,y) + uv(u,v)
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Vertex format: pos(2) + texcoord(2) = 4 floats, 16 bytes
	stride := int32(4 * 4)

	// Position attribute (location = 0): 2 floats
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute (location = 1): 2 floats
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(1, &b.texture)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return b, nil
}

// Upload copies a packed RGBA frame into the blit texture.
// pix holds width*height*4 bytes, row 0 first.
func (b *Blit) Upload(width, height int, pix []byte) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	if width != b.width || height != b.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		b.width = width
		b.height = height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw renders the uploaded frame over the whole viewport.
func (b *Blit) Draw() {
	if b.width == 0 || b.height == 0 {
		return
	}

	// Save state
	var prevBlend, prevDepth int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(b.program)
	gl.Uniform1i(b.locTexture, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	// Restore state
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.TRUE {
		gl.Enable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Close releases the blit's GL resources.
func (b *Blit) Close() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
		b.texture = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}
