package llm

/*
#cgo CFLAGS: -I${SRCDIR}/../../third_party/llama.cpp/include -I${SRCDIR}/../../third_party/llama.cpp/ggml/include
// Note: LDFLAGS are set via Makefile's CGO_LDFLAGS to avoid ggml conflicts with whisper.cpp

#include <stdlib.h>
#include "llama.h"

// Helper function to create default model params
static struct llama_model_params get_default_model_params() {
    return llama_model_default_params();
}

// Helper function to create default context params
static struct llama_context_params get_default_context_params() {
    return llama_context_default_params();
}
*/
import "C"
import (
	"context"
	"strings"
	"sync"
	"unsafe"

	"golos/internal/engine"
)

// LlamaModel - загруженная llama.cpp модель: три связанных нативных
// ресурса (model, context, sampler). Выделяются в этом порядке,
// освобождаются строго в обратном: sampler первым, потому что teardown
// контекста в llama.cpp предполагает отсутствие ссылающихся сэмплеров.
// Обратный порядок - жёсткий контракт нативной библиотеки, поэтому
// последовательность зашита в freeAll, а не оставлена вызывающим.
type LlamaModel struct {
	mu      sync.Mutex
	model   *C.struct_llama_model
	ctx     *C.struct_llama_context
	sampler *C.struct_llama_sampler
	freeAll func()
	nCtx    int
}

// NewLlamaModel загружает GGUF модель из файла.
// Если падает выделение context или sampler, уже выделенные ресурсы
// освобождаются до возврата ошибки - частичная загрузка не течёт.
func NewLlamaModel(modelPath string, nCtx int) (*LlamaModel, error) {
	if nCtx <= 0 {
		nCtx = 2048
	}

	cPath := C.CString(modelPath)
	defer C.free(unsafe.Pointer(cPath))

	m := &LlamaModel{nCtx: nCtx}

	freeAll, err := engine.AcquireAll([]engine.AllocStep{
		{
			Name: "llama model",
			Alloc: func() (func(), error) {
				mparams := C.get_default_model_params()
				model := C.llama_model_load_from_file(cPath, mparams)
				if model == nil {
					return nil, engine.ErrAllocationFailed
				}
				m.model = model
				return func() {
					C.llama_model_free(m.model)
					m.model = nil
				}, nil
			},
		},
		{
			Name: "llama context",
			Alloc: func() (func(), error) {
				cparams := C.get_default_context_params()
				cparams.n_ctx = C.uint32_t(nCtx)
				cparams.n_batch = C.uint32_t(512)

				cctx := C.llama_init_from_model(m.model, cparams)
				if cctx == nil {
					return nil, engine.ErrAllocationFailed
				}
				m.ctx = cctx
				return func() {
					C.llama_free(m.ctx)
					m.ctx = nil
				}, nil
			},
		},
		{
			Name: "llama sampler",
			Alloc: func() (func(), error) {
				sparams := C.llama_sampler_chain_default_params()
				sampler := C.llama_sampler_chain_init(sparams)
				if sampler == nil {
					return nil, engine.ErrAllocationFailed
				}

				// Цепочка сэмплеров: temp -> top_k -> top_p -> dist
				C.llama_sampler_chain_add(sampler, C.llama_sampler_init_temp(0.1))
				C.llama_sampler_chain_add(sampler, C.llama_sampler_init_top_k(40))
				C.llama_sampler_chain_add(sampler, C.llama_sampler_init_top_p(0.9, 1))
				C.llama_sampler_chain_add(sampler, C.llama_sampler_init_dist(C.LLAMA_DEFAULT_SEED))

				m.sampler = sampler
				return func() {
					C.llama_sampler_free(m.sampler)
					m.sampler = nil
				}, nil
			},
		},
	})
	if err != nil {
		return nil, err
	}

	m.freeAll = freeAll
	return m, nil
}

// Name возвращает название движка.
func (m *LlamaModel) Name() string {
	return "llama"
}

// Generate генерирует продолжение prompt.
// Между токенами проверяется ctx - отмена прерывает генерацию,
// уже сгенерированный текст возвращается с ошибкой контекста.
func (m *LlamaModel) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.model == nil || m.ctx == nil {
		return "", engine.ErrNotLoaded
	}

	if maxTokens <= 0 {
		maxTokens = 256
	}

	tokens, err := m.tokenize(prompt, true)
	if err != nil {
		return "", err
	}

	if len(tokens) == 0 {
		return "", &engine.InferenceError{Engine: "llama", Code: -1}
	}

	// Очищаем KV cache от предыдущей генерации
	mem := C.llama_get_memory(m.ctx)
	C.llama_memory_clear(mem, C.bool(true))

	batch := C.llama_batch_get_one((*C.llama_token)(&tokens[0]), C.int32_t(len(tokens)))

	if rc := C.llama_decode(m.ctx, batch); rc != 0 {
		return "", &engine.InferenceError{Engine: "llama", Code: int(rc)}
	}

	var result strings.Builder
	nCur := len(tokens)

	for i := 0; i < maxTokens; i++ {
		select {
		case <-ctx.Done():
			return result.String(), ctx.Err()
		default:
		}

		newToken := C.llama_sampler_sample(m.sampler, m.ctx, -1)

		if C.llama_vocab_is_eog(C.llama_model_get_vocab(m.model), newToken) {
			break
		}

		result.WriteString(m.tokenToPiece(newToken))

		batch = C.llama_batch_get_one(&newToken, 1)
		if C.llama_decode(m.ctx, batch) != 0 {
			break
		}

		nCur++
		if nCur >= m.nCtx {
			break
		}
	}

	return result.String(), nil
}

// tokenize converts text to tokens.
func (m *LlamaModel) tokenize(text string, addBos bool) ([]C.llama_token, error) {
	vocab := C.llama_model_get_vocab(m.model)

	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	// Estimate token count
	nTokens := len(text) + 16
	tokens := make([]C.llama_token, nTokens)

	bos := C.bool(addBos)
	special := C.bool(true)

	n := C.llama_tokenize(vocab, cText, C.int32_t(len(text)),
		(*C.llama_token)(&tokens[0]), C.int32_t(nTokens), bos, special)

	if n < 0 {
		// Need more space
		nTokens = int(-n)
		tokens = make([]C.llama_token, nTokens)
		n = C.llama_tokenize(vocab, cText, C.int32_t(len(text)),
			(*C.llama_token)(&tokens[0]), C.int32_t(nTokens), bos, special)
	}

	if n < 0 {
		return nil, &engine.InferenceError{Engine: "llama", Code: int(n)}
	}

	return tokens[:n], nil
}

// tokenToPiece converts a token to text.
func (m *LlamaModel) tokenToPiece(token C.llama_token) string {
	vocab := C.llama_model_get_vocab(m.model)

	buf := make([]byte, 64)
	n := C.llama_token_to_piece(vocab, token, (*C.char)(unsafe.Pointer(&buf[0])), C.int32_t(len(buf)), 0, C.bool(true))

	if n < 0 {
		// Need more space
		buf = make([]byte, -n)
		n = C.llama_token_to_piece(vocab, token, (*C.char)(unsafe.Pointer(&buf[0])), C.int32_t(len(buf)), 0, C.bool(true))
	}

	if n <= 0 {
		return ""
	}

	return string(buf[:n])
}

// Close освобождает нативные ресурсы: sampler, context, model -
// порядок гарантирует freeAll. Повторный вызов - no-op.
func (m *LlamaModel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.freeAll != nil {
		m.freeAll()
		m.freeAll = nil
	}
}
