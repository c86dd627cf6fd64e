package local

import (
	"stegqr/config"
	"stegqr/util"
)

/*
 * package local runs the local API server with everything it needs:
 * configuration, logger and the session journal.
 */
func RunStegoServer(configFile string, key []byte) error {
	conf, err := config.LoadConfig(configFile, key)
	if err != nil {
		return err
	}
	logger := util.NewLogger(&conf.Logger)

	journal, err := util.ConnectDB(conf.DbFile, conf.DbPassword, conf.DbRowsLimit)
	if err != nil {
		return err
	}
	defer journal.Close()
	if err = journal.InitDB(); err != nil {
		return err
	}

	return NewServer(conf, logger, journal).ListenAndServe()
}
