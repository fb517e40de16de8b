package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallet_scanner/internal/app/port"
	"wallet_scanner/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTokenDirectoryPath = "data/tokens"

// fileCatalog implements port.TokenCatalog from per-chain JSON files:
// data/tokens/<chain identifier>.json, each an array of TokenInfo.
// Loaded once at construction; lookups are case-insensitive map hits.
type fileCatalog struct {
	tokens       map[string]map[string]entity.TokenInfo // chain -> lower(address) -> info
	ordered      map[string][]entity.TokenInfo
	logoBySymbol map[string]map[string]string // chain -> lower(symbol) -> logo
	logger       *zap.Logger
}

// NewFileCatalog reads every <chain>.json under dirPath (the default
// directory when empty). A chain without a token file simply has no
// tracked tokens; a present but unreadable file is an error.
func NewFileCatalog(dirPath string, logger *zap.Logger) (port.TokenCatalog, error) {
	if dirPath == "" {
		dirPath = defaultTokenDirectoryPath
	}
	log := logger.Named("TokenCatalog")

	c := &fileCatalog{
		tokens:       make(map[string]map[string]entity.TokenInfo),
		ordered:      make(map[string][]entity.TokenInfo),
		logoBySymbol: make(map[string]map[string]string),
		logger:       log,
	}

	files, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Token catalog directory does not exist, catalog is empty", zap.String("path", dirPath))
			return c, nil
		}
		return nil, fmt.Errorf("failed to read token catalog directory %s: %w", dirPath, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}
		chain := strings.ToLower(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))

		path := filepath.Join(dirPath, file.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
		}

		var infos []entity.TokenInfo
		if err := json.Unmarshal(data, &infos); err != nil {
			return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
		}

		byAddress := make(map[string]entity.TokenInfo, len(infos))
		byLogo := make(map[string]string, len(infos))
		for _, info := range infos {
			byAddress[strings.ToLower(info.Address)] = info
			if info.Logo != "" {
				byLogo[strings.ToLower(info.Symbol)] = info.Logo
			}
		}
		c.tokens[chain] = byAddress
		c.ordered[chain] = infos
		c.logoBySymbol[chain] = byLogo

		log.Info("Loaded tracked tokens", zap.String("chain", chain), zap.Int("count", len(infos)))
	}

	return c, nil
}

func (c *fileCatalog) Lookup(chain, address string) (entity.TokenInfo, bool) {
	byAddress, ok := c.tokens[strings.ToLower(chain)]
	if !ok {
		return entity.TokenInfo{}, false
	}
	info, ok := byAddress[strings.ToLower(address)]
	return info, ok
}

func (c *fileCatalog) LogoBySymbol(chain, symbol string) string {
	byLogo, ok := c.logoBySymbol[strings.ToLower(chain)]
	if !ok {
		return ""
	}
	return byLogo[strings.ToLower(symbol)]
}

func (c *fileCatalog) TokensByChain(chain string) []entity.TokenInfo {
	infos := c.ordered[strings.ToLower(chain)]
	out := make([]entity.TokenInfo, len(infos))
	copy(out, infos)
	return out
}
