package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"
)

// stagingBufferSize bounds the per-chunk copy through the staging buffer, so
// pipeline memory use is independent of segment size. One native memory page.
const stagingBufferSize = 4096

// pipelineService implements the sessions.PipelineService interface. It drives
// a session's engines over the segments of a request in bounded chunks.
type pipelineService struct {
	table       *sessionTable
	logger      logger.Logger
	enableStats bool
}

// Run executes the request against its target session, which stays exclusively
// locked for the duration of the call.
//
// The hash engine always observes plaintext: on encrypt the digest is updated
// before the cipher transforms the staging buffer, on decrypt after. An error
// aborts the remaining segments immediately; destination bytes already written
// for earlier segments remain, and callers must discard the destination
// contents of a failed request.
func (p *pipelineService) Run(_ context.Context, request *sessions.OperationRequest) error {
	if request == nil {
		return fmt.Errorf("%w: nil request", sessions.ErrInvalidRequest)
	}
	if request.Kind != sessions.OpEncrypt && request.Kind != sessions.OpDecrypt {
		return fmt.Errorf("%w: kind %s", sessions.ErrInvalidOperation, request.Kind)
	}

	handle := p.table.lockForUse(request.SessionID)
	if handle == nil {
		return fmt.Errorf("%w: %s", sessions.ErrNotFound, request.SessionID)
	}
	defer handle.release()
	ses := handle.s

	if ses.hash != nil {
		ses.hash.Init()
	}

	if ses.cipher != nil && request.IV != nil {
		if err := ses.cipher.SetIV(request.IV); err != nil {
			return err
		}
	}

	staging := make([]byte, stagingBufferSize)
	dstCursor := 0

	for i, segment := range request.Segments {
		cipherActive := ses.cipher != nil && segment.Flags&sessions.SegmentCipher != 0
		hashActive := ses.hash != nil && segment.Flags&sessions.SegmentHash != 0

		if cipherActive {
			if len(segment.Src)%ses.cipher.BlockSize() != 0 {
				return fmt.Errorf("%w: segment %d length %d is not a multiple of block size %d",
					sessions.ErrMisalignedInput, i, len(segment.Src), ses.cipher.BlockSize())
			}
			if dstCursor+len(segment.Src) > len(request.Dst) {
				return fmt.Errorf("%w: destination too small for segment %d",
					sessions.ErrInvalidRequest, i)
			}
		}

		remaining := segment.Src
		for len(remaining) > 0 {
			n := len(remaining)
			if n > stagingBufferSize {
				n = stagingBufferSize
			}
			chunk := staging[:n]
			copy(chunk, remaining[:n])

			if request.Kind == sessions.OpEncrypt {
				if hashActive {
					if err := ses.hash.Update(chunk); err != nil {
						return fmt.Errorf("%w: hash update: %v", sessions.ErrEngineFailure, err)
					}
				}
				if cipherActive {
					if err := ses.cipher.Encrypt(chunk); err != nil {
						return err
					}
					copy(request.Dst[dstCursor:], chunk)
					dstCursor += n
				}
			} else {
				if cipherActive {
					if err := ses.cipher.Decrypt(chunk); err != nil {
						return err
					}
					copy(request.Dst[dstCursor:], chunk)
					dstCursor += n
				}
				if hashActive {
					if err := ses.hash.Update(chunk); err != nil {
						return fmt.Errorf("%w: hash update: %v", sessions.ErrEngineFailure, err)
					}
				}
			}

			remaining = remaining[n:]
		}

		if p.enableStats {
			segmentLen := uint64(len(segment.Src))
			switch request.Kind {
			case sessions.OpEncrypt:
				ses.stats.BytesEncrypted += segmentLen
			case sessions.OpDecrypt:
				ses.stats.BytesDecrypted += segmentLen
			}
			if ses.stats.MaxSegmentSize < segmentLen {
				ses.stats.MaxSegmentSize = segmentLen
			}
			ses.stats.Operations++
		}

		pipelineBytesTotal.WithLabelValues(request.Kind.String()).Add(float64(len(segment.Src)))
	}

	if ses.hash != nil {
		digest, err := ses.hash.Final()
		if err != nil {
			return fmt.Errorf("%w: hash final: %v", sessions.ErrEngineFailure, err)
		}
		if request.MAC != nil {
			if len(request.MAC) < len(digest) {
				return fmt.Errorf("%w: mac slot %d bytes, digest is %d",
					sessions.ErrInvalidRequest, len(request.MAC), len(digest))
			}
			copy(request.MAC, digest)
		}
	}

	pipelineOperationsTotal.WithLabelValues(request.Kind.String()).Inc()
	return nil
}
